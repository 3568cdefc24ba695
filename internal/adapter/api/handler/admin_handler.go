package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"sharebin/internal/domain/entity"
	"sharebin/internal/usecase"
	"sharebin/pkg/errors"
	"sharebin/pkg/response"
)

type AdminHandler struct {
	settings  *usecase.SettingUseCase
	quotas    *usecase.QuotaUseCase
	users     *usecase.UserUseCase
	reconcile *usecase.ReconcileUseCase
}

func NewAdminHandler(
	settings *usecase.SettingUseCase,
	quotas *usecase.QuotaUseCase,
	users *usecase.UserUseCase,
	reconcile *usecase.ReconcileUseCase,
) *AdminHandler {
	return &AdminHandler{
		settings:  settings,
		quotas:    quotas,
		users:     users,
		reconcile: reconcile,
	}
}

func (h *AdminHandler) ListSettings(c echo.Context) error {
	settings, err := h.settings.List(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, settings)
}

type setSettingRequest struct {
	Key   string `json:"key" validate:"required"`
	Kind  string `json:"kind" validate:"required,oneof=string bool int long"`
	Value string `json:"value" validate:"required"`
}

func (h *AdminHandler) SetSetting(c echo.Context) error {
	var req setSettingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	ctx := c.Request().Context()
	var err error
	switch req.Kind {
	case entity.SettingKindBool:
		var v bool
		if v, err = parseBoolSetting(req.Value); err == nil {
			err = h.settings.SetBool(ctx, req.Key, v)
		}
	case entity.SettingKindInt:
		var v int64
		if v, err = parseIntSetting(req.Value); err == nil {
			err = h.settings.SetInt(ctx, req.Key, int(v))
		}
	case entity.SettingKindLong:
		var v int64
		if v, err = parseIntSetting(req.Value); err == nil {
			err = h.settings.SetInt64(ctx, req.Key, v)
		}
	default:
		err = h.settings.SetString(ctx, req.Key, req.Value)
	}
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Setting updated"})
}

type createUserRequest struct {
	Username string `json:"username" validate:"required,alphanum,min=3,max=32"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
}

func (h *AdminHandler) CreateUser(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}
	if req.Role == "" {
		req.Role = "user"
	}

	user, err := h.users.Create(c.Request().Context(), req.Username, req.Role)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, user)
}

func (h *AdminHandler) GetQuota(c echo.Context) error {
	quota, err := h.quotas.Get(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, quota)
}

type setQuotaRequest struct {
	MaxFileSize *int64 `json:"max_file_size" validate:"omitempty,min=0"`
	MaxStorage  *int64 `json:"max_storage" validate:"omitempty,min=0"`
}

func (h *AdminHandler) SetQuota(c echo.Context) error {
	var req setQuotaRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	quota, err := h.quotas.SetLimits(c.Request().Context(), c.Param("userId"), req.MaxFileSize, req.MaxStorage)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, quota)
}

func (h *AdminHandler) RecalculateQuota(c echo.Context) error {
	count, err := h.quotas.Recalculate(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]int{"files_counted": count})
}

func (h *AdminHandler) SweepOrphans(c echo.Context) error {
	removed, err := h.reconcile.SweepOrphans(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]int{"objects_removed": removed})
}

func (h *AdminHandler) RegenerateMetadata(c echo.Context) error {
	updated, err := h.reconcile.RegenerateMetadata(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]int{"files_updated": updated})
}

func parseBoolSetting(value string) (bool, error) {
	v, err := strconv.ParseBool(value)
	if err != nil {
		return false, errors.BadRequest("Value must be a boolean", err)
	}
	return v, nil
}

func parseIntSetting(value string) (int64, error) {
	v, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, errors.BadRequest("Value must be an integer", err)
	}
	return v, nil
}
