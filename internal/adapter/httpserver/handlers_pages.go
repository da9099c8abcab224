package httpserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

const silence = "Silence..."

func (s *Server) registerPageRoutes() {
	s.echo.GET("/", s.handleIndex)
	s.echo.GET("/home", s.handleHome)
	s.echo.GET("/secured_home", s.handleSecuredHome, s.requireLogin)
	s.echo.GET("/echo", s.handleEcho)
}

// handleIndex shows the current user only when the session guard would pass.
func (s *Server) handleIndex(c echo.Context) error {
	data := map[string]any{"CurrentUser": s.authorize(c).Username}
	return s.renderTemplate(c, "index.html", data)
}

func (s *Server) handleHome(c echo.Context) error {
	data := map[string]any{"CurrentUser": s.authorize(c).Username}
	return s.renderTemplate(c, "home.html", data)
}

func (s *Server) handleSecuredHome(c echo.Context) error {
	data := map[string]any{"CurrentUser": c.Get(contextKeyUsername)}
	return s.renderTemplate(c, "home.html", data)
}

// handleEcho writes the shout parameter back verbatim.
func (s *Server) handleEcho(c echo.Context) error {
	shout := c.QueryParam("shout")
	if shout == "" {
		shout = silence
	}
	if err := c.HTML(http.StatusOK, shout); err != nil {
		return fmt.Errorf("failed to send echo response: %w", err)
	}
	return nil
}
