package middleware

import (
	"github.com/labstack/echo/v4"

	"sharebin/pkg/errors"
	"sharebin/pkg/response"
)

type AdminMiddleware struct{}

func NewAdminMiddleware() *AdminMiddleware {
	return &AdminMiddleware{}
}

// AdminOnly must run after Authenticate.
func (m *AdminMiddleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := UserFromContext(c)
		if user == nil || user.Role != "admin" {
			return response.Error(c, errors.Forbidden("Admin access required", nil))
		}
		return next(c)
	}
}
