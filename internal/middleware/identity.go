package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// currentUserID returns the authenticated user id as a string for rate-limit
// key building, or "anon" when the request carries no valid token. JWTAuth
// stores the sub claim without asserting a type, so it may arrive as a
// float64 (JSON number) or a string depending on how the token was minted.
func currentUserID(c echo.Context) string {
	switch v := c.Get("user_id").(type) {
	case string:
		if v != "" {
			return v
		}
	case float64:
		return fmt.Sprintf("%.0f", v)
	case uint64:
		return fmt.Sprintf("%d", v)
	}
	return "anon"
}
