// Package session carries the authenticated user identity through the
// request explicitly, instead of an ambient auth context. Verifying the
// identity is the job of the upstream auth layer; this only transports
// its result.
package session

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

const contextKey = "session"

// HeaderUserID is set by the authentication layer in front of this
// service.
const HeaderUserID = "X-User-ID"

type Session struct {
	UserID uint
}

// Middleware extracts the session from the X-User-ID header, falling
// back to the userId query parameter, and rejects requests without one.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(HeaderUserID)
			if raw == "" {
				raw = c.QueryParam("userId")
			}
			if raw == "" {
				return echo.NewHTTPError(http.StatusBadRequest, "missing user id")
			}

			id, err := strconv.ParseUint(raw, 10, 64)
			if err != nil || id == 0 {
				return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
			}

			Set(c, Session{UserID: uint(id)})
			return next(c)
		}
	}
}

// Set attaches a session to the request context.
func Set(c echo.Context, sess Session) {
	c.Set(contextKey, sess)
}

// Get returns the session attached to the request context.
func Get(c echo.Context) (Session, bool) {
	sess, ok := c.Get(contextKey).(Session)
	return sess, ok
}
