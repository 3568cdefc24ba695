package handler

import (
	"fmt"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"sharebin/internal/adapter/api/middleware"
	"sharebin/internal/domain/entity"
	"sharebin/internal/usecase"
	"sharebin/pkg/errors"
	"sharebin/pkg/logger"
	"sharebin/pkg/response"
	"sharebin/pkg/utils"
)

type FileHandler struct {
	uploads *usecase.UploadUseCase
	baseURL string
}

func NewFileHandler(uploads *usecase.UploadUseCase, baseURL string) *FileHandler {
	return &FileHandler{uploads: uploads, baseURL: baseURL}
}

type fileResponse struct {
	*entity.File
	DownloadURL string `json:"download_url"`
	ShortLink   string `json:"short_link,omitempty"`
}

func (h *FileHandler) toResponse(file *entity.File) *fileResponse {
	resp := &fileResponse{
		File:        file,
		DownloadURL: fmt.Sprintf("%s/v1/files/%s/download", h.baseURL, file.ID),
	}
	if file.ShortURL != nil {
		resp.ShortLink = fmt.Sprintf("%s/d/%s", h.baseURL, *file.ShortURL)
	}
	return resp
}

func (h *FileHandler) Upload(c echo.Context) error {
	user := middleware.UserFromContext(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("Missing or invalid file", err))
	}

	public := false
	if v := c.FormValue("public"); v != "" {
		public, _ = strconv.ParseBool(v)
	}

	filename := fileHeader.Filename
	if v := c.FormValue("filename"); v != "" {
		filename = v
	}

	src, err := fileHeader.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Unable to read file", err))
	}
	defer src.Close()

	logger.Debug("Upload of %s (%d bytes declared) by %s", fileHeader.Filename, fileHeader.Size, user.ID)

	file, err := h.uploads.Upload(c.Request().Context(), user, src, usecase.UploadInput{
		Filename: filename,
		Public:   public,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, h.toResponse(file))
}

func (h *FileHandler) Get(c echo.Context) error {
	user := middleware.UserFromContext(c)

	file, err := h.uploads.Get(c.Request().Context(), user, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, h.toResponse(file))
}

func (h *FileHandler) Download(c echo.Context) error {
	user := middleware.UserFromContext(c)

	file, rc, info, err := h.uploads.Open(c.Request().Context(), user, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	defer rc.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", file.Filename))
	if info.Size > 0 {
		c.Response().Header().Set(echo.HeaderContentLength, strconv.FormatInt(info.Size, 10))
	}
	return c.Stream(200, file.MimeType, rc)
}

func (h *FileHandler) DownloadPreview(c echo.Context) error {
	user := middleware.UserFromContext(c)

	preview, rc, err := h.uploads.OpenPreview(c.Request().Context(), user, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	defer rc.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", preview.Filename))
	return c.Stream(200, preview.MimeType, rc)
}

func (h *FileHandler) Presign(c echo.Context) error {
	user := middleware.UserFromContext(c)

	ttl := 15 * time.Minute
	if v := c.QueryParam("ttl"); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil || seconds <= 0 || seconds > 86400 {
			return response.Error(c, errors.BadRequest("ttl must be between 1 and 86400 seconds", err))
		}
		ttl = time.Duration(seconds) * time.Second
	}

	url, err := h.uploads.PresignedURL(c.Request().Context(), user, c.Param("id"), ttl)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"url": url})
}

func (h *FileHandler) List(c echo.Context) error {
	user := middleware.UserFromContext(c)
	pagination := utils.GetPaginationParams(c)

	files, total, err := h.uploads.ListFiles(c.Request().Context(), user.ID, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	items := make([]*fileResponse, 0, len(files))
	for _, file := range files {
		items = append(items, h.toResponse(file))
	}
	return response.Paginated(c, items, total, pagination.Page, pagination.PageSize)
}

func (h *FileHandler) Search(c echo.Context) error {
	user := middleware.UserFromContext(c)
	pagination := utils.GetPaginationParams(c)

	query := c.QueryParam("q")
	if query == "" {
		return response.Error(c, errors.BadRequest("Query parameter q is required", nil))
	}

	files, total, err := h.uploads.SearchFiles(c.Request().Context(), user.ID, query, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	items := make([]*fileResponse, 0, len(files))
	for _, file := range files {
		items = append(items, h.toResponse(file))
	}
	return response.Paginated(c, items, total, pagination.Page, pagination.PageSize)
}

func (h *FileHandler) Delete(c echo.Context) error {
	user := middleware.UserFromContext(c)

	if err := h.uploads.Delete(c.Request().Context(), user, c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "File deleted"})
}
