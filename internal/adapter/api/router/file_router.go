package router

import (
	"github.com/labstack/echo/v4"

	"sharebin/internal/adapter/api/handler"
	"sharebin/internal/adapter/api/middleware"
)

func SetupFileRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	fileHandler := handler.GetFileHandler()

	files := e.Group("/v1/files")
	files.Use(authMiddleware.Authenticate)

	files.POST("", fileHandler.Upload, rateLimitMiddleware.Limit("upload"))
	files.GET("", fileHandler.List)
	files.GET("/search", fileHandler.Search)
	files.DELETE("/:id", fileHandler.Delete)
	files.GET("/:id/presign", fileHandler.Presign)

	// Reads allow anonymous access to public files.
	public := e.Group("/v1/files")
	public.Use(authMiddleware.Optional)
	public.GET("/:id", fileHandler.Get)
	public.GET("/:id/download", fileHandler.Download)
	public.GET("/:id/preview", fileHandler.DownloadPreview)

	// Short download URLs.
	e.GET("/d/:id", fileHandler.Download, authMiddleware.Optional)
}
