package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pscheid92/hxdemo/internal/domain"
	"github.com/pscheid92/hxdemo/internal/platform/correlation"
)

const (
	loginPath = "/login"

	// headerHXRedirect makes htmx perform a full-page navigation instead of
	// swapping the response into the target element.
	headerHXRedirect = "HX-Redirect"

	contextKeyUsername = "username"
)

func correlationMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := correlation.FromHeader(c.Request().Header.Get(correlation.Header))
		c.SetRequest(c.Request().WithContext(correlation.WithID(c.Request().Context(), id)))
		c.Response().Header().Set(correlation.Header, id)
		return next(c)
	}
}

// authResult is the outcome of the session guard. When Authorized is false,
// RedirectTo names the page the client should navigate to.
type authResult struct {
	Authorized bool
	Username   string
	RedirectTo string
}

// authorize requires both the LoggedIn marker cookie and a signed session
// cookie that references a live server-side session.
func (s *Server) authorize(c echo.Context) authResult {
	denied := authResult{RedirectTo: loginPath}

	if _, err := c.Cookie(loggedInCookieName); err != nil {
		return denied
	}

	sessionID, ok := s.sessionID(c)
	if !ok {
		return denied
	}

	username, err := s.app.CurrentUser(c.Request().Context(), sessionID)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			slog.ErrorContext(c.Request().Context(), "Failed to resolve session", "session_id", sessionID, "error", err)
		}
		return denied
	}

	return authResult{Authorized: true, Username: username}
}

// requireLogin answers unauthorized requests itself: 401 plus an HX-Redirect
// to the login page, so htmx navigates instead of swapping a fragment.
func (s *Server) requireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		result := s.authorize(c)
		if !result.Authorized {
			return s.denyLogin(c, result)
		}

		c.Set(contextKeyUsername, result.Username)
		return next(c)
	}
}

func (s *Server) denyLogin(c echo.Context, result authResult) error {
	slog.InfoContext(c.Request().Context(), "Login required", "path", c.Request().URL.Path)
	c.Response().Header().Set(headerHXRedirect, result.RedirectTo)
	data := map[string]any{"RedirectTo": result.RedirectTo}
	return s.renderTemplateStatus(c, http.StatusUnauthorized, "unauthorized.html", data)
}

// sessionID reads the session ID from the signed session cookie.
func (s *Server) sessionID(c echo.Context) (uuid.UUID, bool) {
	session, err := s.sessionStore.Get(c.Request(), sessionName)
	if err != nil {
		return uuid.Nil, false
	}

	raw, ok := session.Values[sessionKeyID].(string)
	if !ok {
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
