package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxIdentity extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: uid and username must
// be non-empty (presence proves the middleware ran and the token carried a
// usable identity).
func ctxIdentity(c echo.Context) (uid, username string, err error) {
	uid, _ = c.Get("uid").(string)
	username, _ = c.Get("username").(string)
	if uid == "" || username == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return uid, username, nil
}
