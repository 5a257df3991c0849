package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func invoke(t *testing.T, target string, header string) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if header != "" {
		req.Header.Set(HeaderUserID, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	err := Middleware()(next)(c)
	return c, err
}

func TestMiddleware_HeaderWins(t *testing.T) {
	c, err := invoke(t, "/api/v1/events?userId=9", "7")

	assert.NoError(t, err)
	sess, ok := Get(c)
	assert.True(t, ok)
	assert.Equal(t, uint(7), sess.UserID)
}

func TestMiddleware_QueryFallback(t *testing.T) {
	c, err := invoke(t, "/api/v1/events?userId=9", "")

	assert.NoError(t, err)
	sess, ok := Get(c)
	assert.True(t, ok)
	assert.Equal(t, uint(9), sess.UserID)
}

func TestMiddleware_Missing(t *testing.T) {
	_, err := invoke(t, "/api/v1/events", "")

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestMiddleware_Invalid(t *testing.T) {
	_, err := invoke(t, "/api/v1/events", "abc")

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}
