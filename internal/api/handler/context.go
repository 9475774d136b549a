package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/surtekbb/pileta-system/internal/core/domain"
)

// ctxClaims extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: both user_id and role
// must be non-empty (presence proves the middleware ran and the token carried
// a usable identity).
func ctxClaims(c echo.Context) (userID string, role domain.Role, err error) {
	uid, _ := c.Get("user_id").(string)
	r, _ := c.Get("role").(string)
	if uid == "" || r == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return uid, domain.Role(r), nil
}
