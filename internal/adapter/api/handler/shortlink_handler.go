package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"sharebin/internal/adapter/api/middleware"
	"sharebin/internal/domain/entity"
	"sharebin/internal/usecase"
	"sharebin/pkg/response"
)

type ShortLinkHandler struct {
	links   *usecase.ShortLinkUseCase
	baseURL string
}

func NewShortLinkHandler(links *usecase.ShortLinkUseCase, baseURL string) *ShortLinkHandler {
	return &ShortLinkHandler{links: links, baseURL: baseURL}
}

type createShortLinkRequest struct {
	TargetURL string `json:"target_url" validate:"required,url"`
	Vanity    string `json:"vanity" validate:"omitempty,alphanum,min=3,max=32"`
}

type shortLinkResponse struct {
	*entity.ShortLink
	URL string `json:"url"`
}

func (h *ShortLinkHandler) toResponse(link *entity.ShortLink) *shortLinkResponse {
	return &shortLinkResponse{
		ShortLink: link,
		URL:       fmt.Sprintf("%s/s/%s", h.baseURL, link.Code),
	}
}

func (h *ShortLinkHandler) Create(c echo.Context) error {
	user := middleware.UserFromContext(c)

	var req createShortLinkRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	link, err := h.links.Create(c.Request().Context(), user, usecase.CreateShortLinkInput{
		TargetURL: req.TargetURL,
		Vanity:    req.Vanity,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, h.toResponse(link))
}

// Redirect is the public hop: GET /s/:code sends the browser to the
// target.
func (h *ShortLinkHandler) Redirect(c echo.Context) error {
	link, err := h.links.ResolvePublic(c.Request().Context(), c.Param("code"))
	if err != nil {
		return response.Error(c, err)
	}
	return c.Redirect(http.StatusFound, link.TargetURL)
}

func (h *ShortLinkHandler) Get(c echo.Context) error {
	link, err := h.links.Resolve(c.Request().Context(), c.Param("code"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, h.toResponse(link))
}

func (h *ShortLinkHandler) Delete(c echo.Context) error {
	user := middleware.UserFromContext(c)

	if err := h.links.Delete(c.Request().Context(), user, c.Param("code")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Link deleted"})
}
