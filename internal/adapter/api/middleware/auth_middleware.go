package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"sharebin/internal/domain/entity"
	"sharebin/internal/usecase"
	"sharebin/pkg/errors"
	"sharebin/pkg/response"
)

type AuthMiddleware struct {
	users *usecase.UserUseCase
}

func NewAuthMiddleware(users *usecase.UserUseCase) *AuthMiddleware {
	return &AuthMiddleware{users: users}
}

func (m *AuthMiddleware) lookup(c echo.Context) (*entity.User, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, errors.Unauthorized("Authorization header is required", nil)
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, errors.Unauthorized("Invalid authorization format", nil)
	}

	user, err := m.users.Authenticate(c.Request().Context(), parts[1])
	if err != nil {
		return nil, errors.Unauthorized("Invalid API token", err)
	}
	return user, nil
}

// Authenticate requires a valid Bearer API token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := m.lookup(c)
		if err != nil {
			return response.Error(c, err)
		}

		c.Set("user", user)
		c.Set("uid", user.ID)
		return next(c)
	}
}

// Optional resolves the caller when a token is present but lets
// anonymous requests through. Used on download routes where public
// files need no auth.
func (m *AuthMiddleware) Optional(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Request().Header.Get("Authorization") != "" {
			if user, err := m.lookup(c); err == nil {
				c.Set("user", user)
				c.Set("uid", user.ID)
			}
		}
		return next(c)
	}
}

// UserFromContext returns the authenticated user, or nil for anonymous
// requests.
func UserFromContext(c echo.Context) *entity.User {
	if user, ok := c.Get("user").(*entity.User); ok {
		return user
	}
	return nil
}
