package httpserver

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestNewRateLimiter(t *testing.T) {
	e := echo.New()
	e.GET("/limited", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}, newRateLimiter(0.001, 2))

	var codes []int
	for range 3 {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/limited", nil))
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestNewRateLimiter_PerClientIP(t *testing.T) {
	e := echo.New()
	e.GET("/limited", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}, newRateLimiter(0.001, 1))

	for _, addr := range []string{"192.0.2.1:1000", "192.0.2.2:1000"} {
		req := httptest.NewRequest(http.MethodGet, "/limited", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, addr)
	}
}

func TestRateLimitedRoutes(t *testing.T) {
	srv := newTestServer(t, &mockAppService{}, withRateLimit(0.001, 1))

	first := serve(srv, httptest.NewRequest(http.MethodGet, "/plot_internal", nil))
	second := serve(srv, httptest.NewRequest(http.MethodGet, "/plot_internal", nil))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "rate limit exceeded", second.Body.String())

	form := url.Values{"username": {"alice"}, "password": {"x"}}
	loginRec := serve(srv, formRequest(http.MethodPost, "/login", form))
	assert.Equal(t, http.StatusTooManyRequests, loginRec.Code)
}
