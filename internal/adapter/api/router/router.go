package router

import (
	"github.com/labstack/echo/v4"

	"sharebin/internal/adapter/api/middleware"
)

func Setup(
	e *echo.Echo,
	authMiddleware *middleware.AuthMiddleware,
	adminMiddleware *middleware.AdminMiddleware,
	rateLimitMiddleware *middleware.RateLimitMiddleware,
) {
	SetupFileRouter(e, authMiddleware, rateLimitMiddleware)
	SetupShortLinkRouter(e, authMiddleware, rateLimitMiddleware)
	SetupAdminRouter(e, authMiddleware, adminMiddleware)
	SetupHealthRouter(e)
}
