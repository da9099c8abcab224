package httpserver

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/pscheid92/hxdemo/internal/adapter/metrics"
	"github.com/pscheid92/hxdemo/internal/domain"
	apperrors "github.com/pscheid92/hxdemo/internal/platform/errors"
	"github.com/pscheid92/hxdemo/internal/platform/config"
	"github.com/pscheid92/hxdemo/internal/waveform"
	"github.com/pscheid92/hxdemo/web"
)

type appService interface {
	Login(ctx context.Context, username, password string) (*domain.Session, error)
	Logout(ctx context.Context, sessionID uuid.UUID) error
	CurrentUser(ctx context.Context, sessionID uuid.UUID) (string, error)
	Items(ctx context.Context) ([]string, error)
	AddItem(ctx context.Context, item string) ([]string, error)
	DeleteItem(ctx context.Context, position int) ([]string, error)
	FirstPage() []string
	Page(ctx context.Context, page int) ([]string, error)
	Plot(ctx context.Context, p waveform.Params) (string, error)
}

// Observability bundles the optional metrics wiring; zero values disable it.
type Observability struct {
	Registry    *prometheus.Registry
	HTTPMetrics *metrics.HTTPMetrics
}

type Server struct {
	echo   *echo.Echo
	config *config.Config
	clock  clockwork.Clock

	app appService

	templates    *template.Template
	sessionStore *sessions.CookieStore

	registry     *prometheus.Registry
	httpMetrics  *metrics.HTTPMetrics
	healthChecks []HealthCheck
	startTime    time.Time
}

func NewServer(cfg *config.Config, app appService, clock clockwork.Clock, obs Observability, healthChecks []HealthCheck) (*Server, error) {
	templates, err := web.ParseTemplates()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = apperrors.HTTPErrorHandler

	srv := &Server{
		echo:         e,
		config:       cfg,
		clock:        clock,
		app:          app,
		templates:    templates,
		sessionStore: setupSessionStore(cfg),
		registry:     obs.Registry,
		httpMetrics:  obs.HTTPMetrics,
		healthChecks: healthChecks,
		startTime:    clock.Now(),
	}

	srv.registerRoutes()

	return srv, nil
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	if err := s.echo.Start(":" + s.config.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}

// Session keys
const (
	sessionName  = "hxdemo-session"
	sessionKeyID = "session_id"
)

func (s *Server) renderTemplate(c echo.Context, name string, data any) error {
	return s.renderTemplateStatus(c, http.StatusOK, name, data)
}

func (s *Server) renderTemplateStatus(c echo.Context, status int, name string, data any) error {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		slog.ErrorContext(c.Request().Context(), "Template execution failed", "template", name, "path", c.Request().URL.Path, "error", err)
		if err := c.String(http.StatusInternalServerError, "Failed to render page"); err != nil {
			return fmt.Errorf("failed to send error response: %w", err)
		}
		return nil
	}
	if err := c.HTMLBlob(status, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to send HTML response: %w", err)
	}
	return nil
}

func setupSessionStore(cfg *config.Config) *sessions.CookieStore {
	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   0, // browser-session lifetime
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	return sessionStore
}
