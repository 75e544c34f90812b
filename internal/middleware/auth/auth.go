package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/shophub/backend/internal/tokens"
)

// Middleware guards protected routes with a bearer token. On success the
// decoded user id and email are put on the echo context for handlers.
type Middleware struct {
	JWTSecret []byte
}

func New(secret []byte) *Middleware {
	return &Middleware{JWTSecret: secret}
}

func (m *Middleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		raw := strings.TrimPrefix(header, "Bearer ")
		if raw == "" {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Please authenticate"})
		}

		claims, err := tokens.AccessClaimsFromToken(raw, m.JWTSecret)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Please authenticate"})
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		return next(c)
	}
}

// UserID reads the identity set by RequireAuth.
func UserID(c echo.Context) (uint, bool) {
	v, ok := c.Get("user_id").(uint)
	return v, ok
}

func UserEmail(c echo.Context) (string, bool) {
	v, ok := c.Get("user_email").(string)
	return v, ok
}
