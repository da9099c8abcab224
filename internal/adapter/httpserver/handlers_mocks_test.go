package httpserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/pscheid92/hxdemo/internal/adapter/memory"
	"github.com/pscheid92/hxdemo/internal/app"
	"github.com/pscheid92/hxdemo/internal/domain"
	apperrors "github.com/pscheid92/hxdemo/internal/platform/errors"
	"github.com/pscheid92/hxdemo/internal/platform/config"
	"github.com/pscheid92/hxdemo/internal/waveform"
	"github.com/pscheid92/hxdemo/web"
	"github.com/stretchr/testify/require"
)

// --- Mock implementations ---

type mockAppService struct {
	loginFn       func(ctx context.Context, username, password string) (*domain.Session, error)
	logoutFn      func(ctx context.Context, sessionID uuid.UUID) error
	currentUserFn func(ctx context.Context, sessionID uuid.UUID) (string, error)
	itemsFn       func(ctx context.Context) ([]string, error)
	addItemFn     func(ctx context.Context, item string) ([]string, error)
	deleteItemFn  func(ctx context.Context, position int) ([]string, error)
	pageFn        func(ctx context.Context, page int) ([]string, error)
	plotFn        func(ctx context.Context, p waveform.Params) (string, error)
}

func (m *mockAppService) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, username, password)
	}
	return &domain.Session{ID: uuid.New(), Username: username}, nil
}

func (m *mockAppService) Logout(ctx context.Context, sessionID uuid.UUID) error {
	if m.logoutFn != nil {
		return m.logoutFn(ctx, sessionID)
	}
	return nil
}

func (m *mockAppService) CurrentUser(ctx context.Context, sessionID uuid.UUID) (string, error) {
	if m.currentUserFn != nil {
		return m.currentUserFn(ctx, sessionID)
	}
	return "", domain.ErrSessionNotFound
}

func (m *mockAppService) Items(ctx context.Context) ([]string, error) {
	if m.itemsFn != nil {
		return m.itemsFn(ctx)
	}
	return nil, nil
}

func (m *mockAppService) AddItem(ctx context.Context, item string) ([]string, error) {
	if m.addItemFn != nil {
		return m.addItemFn(ctx, item)
	}
	return []string{item}, nil
}

func (m *mockAppService) DeleteItem(ctx context.Context, position int) ([]string, error) {
	if m.deleteItemFn != nil {
		return m.deleteItemFn(ctx, position)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAppService) FirstPage() []string {
	return []string{"Item 1"}
}

func (m *mockAppService) Page(ctx context.Context, page int) ([]string, error) {
	if m.pageFn != nil {
		return m.pageFn(ctx, page)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAppService) Plot(ctx context.Context, p waveform.Params) (string, error) {
	if m.plotFn != nil {
		return m.plotFn(ctx, p)
	}
	return "aW1n", nil
}

type stubRenderer struct {
	params []waveform.Params
}

func (r *stubRenderer) Render(_ context.Context, p waveform.Params) (string, error) {
	r.params = append(r.params, p)
	return "aW1n", nil
}

// --- Test helpers ---

func newTestServer(t *testing.T, svc appService, opts ...func(*Server)) *Server {
	t.Helper()

	tmpl, err := web.ParseTemplates()
	require.NoError(t, err)

	store := sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!!"))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
	}

	e := echo.New()
	e.HTTPErrorHandler = apperrors.HTTPErrorHandler
	clock := clockwork.NewFakeClock()

	srv := &Server{
		echo:         e,
		config:       &config.Config{CookieSecure: true, RateLimitRPS: 1000, RateLimitBurst: 1000},
		clock:        clock,
		app:          svc,
		templates:    tmpl,
		sessionStore: store,
		startTime:    clock.Now(),
	}

	for _, opt := range opts {
		opt(srv)
	}

	srv.registerRoutes()

	return srv
}

// newMemoryApp wires the real application service over in-memory repositories.
func newMemoryApp(renderer *stubRenderer, clock clockwork.Clock, pagingDelay time.Duration) *app.Service {
	return app.NewService(memory.NewSessionRepo(), memory.NewItemRepo(), renderer, clock, app.Options{PagingDelay: pagingDelay})
}

func withHealthChecks(checks ...HealthCheck) func(*Server) {
	return func(s *Server) {
		s.healthChecks = checks
	}
}

func withRateLimit(rps float64, burst int) func(*Server) {
	return func(s *Server) {
		s.config.RateLimitRPS = rps
		s.config.RateLimitBurst = burst
	}
}

func serve(srv *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)
	return rec
}

func formRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

func withCookies(req *http.Request, cookies []*http.Cookie) *http.Request {
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	return req
}

// login posts the login form and returns the cookies the browser would keep.
func login(t *testing.T, srv *Server, username string) []*http.Cookie {
	t.Helper()

	form := url.Values{"username": {username}, "password": {"secret"}}
	rec := serve(srv, formRequest(http.MethodPost, "/login", form))
	require.Equal(t, http.StatusSeeOther, rec.Code)

	return rec.Result().Cookies()
}

func findCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}
