package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	authmw "github.com/shophub/backend/internal/middleware/auth"
)

func errorJSON(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"error": msg})
}

// userID reads the identity the auth middleware attached. A miss can only
// mean a route was wired without the guard.
func userID(c echo.Context) (uint, error) {
	id, ok := authmw.UserID(c)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "Please authenticate")
	}
	return id, nil
}

// publishCtx bounds best-effort event publishing so a slow broker never
// stalls the response path.
func publishCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}
