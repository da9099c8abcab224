package httpserver

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	apperrors "github.com/pscheid92/hxdemo/internal/platform/errors"
)

const loggedInCookieName = "LoggedIn"

func (s *Server) registerAuthRoutes(rateLimiter echo.MiddlewareFunc) {
	s.echo.GET("/login", s.handleLoginPage)
	s.echo.POST("/login", s.handleLogin, rateLimiter)
	s.echo.POST("/logout", s.handleLogout)
}

func (s *Server) handleLoginPage(c echo.Context) error {
	return s.renderTemplate(c, "login.html", nil)
}

// handleLogin accepts any username. The password must be present but is never checked.
func (s *Server) handleLogin(c echo.Context) error {
	ctx := c.Request().Context()

	username := c.FormValue("username")
	if username == "" {
		return apperrors.ValidationError("username is required")
	}
	password := c.FormValue("password")
	if password == "" {
		return apperrors.ValidationError("password is required")
	}

	// A new login replaces whatever session this browser held before.
	if previousID, ok := s.sessionID(c); ok {
		if err := s.app.Logout(ctx, previousID); err != nil {
			slog.WarnContext(ctx, "Failed to drop previous session", "session_id", previousID, "error", err)
		}
	}

	session, err := s.app.Login(ctx, username, password)
	if err != nil {
		return apperrors.InternalError("failed to log in", err).WithField("username", username)
	}

	cookieSession := s.loadCookieSession(c)
	cookieSession.Values[sessionKeyID] = session.ID.String()
	if err := cookieSession.Save(c.Request(), c.Response().Writer); err != nil {
		return apperrors.InternalError("failed to save session", err)
	}

	c.SetCookie(s.loggedInCookie("true", 0))

	if err := c.Redirect(http.StatusSeeOther, "/"); err != nil {
		return fmt.Errorf("failed to redirect: %w", err)
	}
	return nil
}

func (s *Server) handleLogout(c echo.Context) error {
	ctx := c.Request().Context()

	if sessionID, ok := s.sessionID(c); ok {
		if err := s.app.Logout(ctx, sessionID); err != nil {
			return apperrors.InternalError("failed to log out", err).WithField("session_id", sessionID.String())
		}
	}

	cookieSession := s.loadCookieSession(c)
	cookieSession.Options.MaxAge = -1
	if err := cookieSession.Save(c.Request(), c.Response().Writer); err != nil {
		return apperrors.InternalError("failed to save logout session", err)
	}

	c.SetCookie(s.loggedInCookie("", -1))

	if err := c.Redirect(http.StatusSeeOther, "/"); err != nil {
		return fmt.Errorf("failed to redirect: %w", err)
	}
	return nil
}

// loadCookieSession falls back to a fresh session when the existing cookie
// cannot be decoded (e.g. after a secret rotation).
func (s *Server) loadCookieSession(c echo.Context) *sessions.Session {
	session, err := s.sessionStore.Get(c.Request(), sessionName)
	if err == nil {
		return session
	}

	slog.InfoContext(c.Request().Context(), "Discarding undecodable session cookie", "error", err)
	session = sessions.NewSession(s.sessionStore, sessionName)
	opts := *s.sessionStore.Options
	session.Options = &opts
	session.IsNew = true
	return session
}

// loggedInCookie builds the LoggedIn marker. maxAge 0 keeps it for the
// browser session; -1 deletes it.
func (s *Server) loggedInCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     loggedInCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   s.config.CookieSecure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
