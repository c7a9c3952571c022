package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/snazzify/snazzpay-backend/internal/handler"
)

// RequireAPIKey gates operator endpoints behind a shared key. An empty
// configured key disables the gate (local development).
func RequireAPIKey(key string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if key == "" {
				return next(c)
			}
			given := c.Request().Header.Get("X-API-Key")
			if subtle.ConstantTimeCompare([]byte(given), []byte(key)) != 1 {
				return c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized", "invalid or missing api key"))
			}
			return next(c)
		}
	}
}
