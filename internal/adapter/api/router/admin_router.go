package router

import (
	"github.com/labstack/echo/v4"

	"sharebin/internal/adapter/api/handler"
	"sharebin/internal/adapter/api/middleware"
)

func SetupAdminRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	adminHandler := handler.GetAdminHandler()

	admin := e.Group("/v1/admin")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)

	admin.GET("/settings", adminHandler.ListSettings)
	admin.PUT("/settings", adminHandler.SetSetting)

	admin.POST("/users", adminHandler.CreateUser)
	admin.GET("/users/:userId/quota", adminHandler.GetQuota)
	admin.PUT("/users/:userId/quota", adminHandler.SetQuota)
	admin.POST("/users/:userId/quota/recalculate", adminHandler.RecalculateQuota)

	admin.POST("/maintenance/sweep-orphans", adminHandler.SweepOrphans)
	admin.POST("/maintenance/regenerate-metadata", adminHandler.RegenerateMetadata)
}
