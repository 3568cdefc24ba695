package router

import (
	"github.com/labstack/echo/v4"

	"sharebin/internal/adapter/api/handler"
	"sharebin/internal/adapter/api/middleware"
)

func SetupShortLinkRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	shortLinkHandler := handler.GetShortLinkHandler()

	links := e.Group("/v1/links")
	links.Use(authMiddleware.Authenticate)

	links.POST("", shortLinkHandler.Create, rateLimitMiddleware.Limit("shorten"))
	links.GET("/:code", shortLinkHandler.Get)
	links.DELETE("/:code", shortLinkHandler.Delete)

	// Public redirect hop.
	e.GET("/s/:code", shortLinkHandler.Redirect)
}
