package httpserver

import (
	"github.com/labstack/echo/v4"
	apperrors "github.com/pscheid92/hxdemo/internal/platform/errors"
)

func (s *Server) registerItemRoutes() {
	s.echo.GET("/list", s.handleListItems)
	s.echo.POST("/item", s.handleAddItem, s.requireLogin)
	s.echo.DELETE("/item/:item_id", s.handleDeleteItem)
}

func (s *Server) handleListItems(c echo.Context) error {
	items, err := s.app.Items(c.Request().Context())
	if err != nil {
		return apperrors.InternalError("failed to load items", err)
	}
	return s.renderItems(c, items)
}

func (s *Server) handleAddItem(c echo.Context) error {
	item := c.FormValue("item")
	if item == "" {
		return apperrors.ValidationError("item is required")
	}

	items, err := s.app.AddItem(c.Request().Context(), item)
	if err != nil {
		return apperrors.InternalError("failed to add item", err)
	}
	return s.renderItems(c, items)
}

// handleDeleteItem removes by 1-based position. A position outside the list
// is a server fault (500), not a client error.
func (s *Server) handleDeleteItem(c echo.Context) error {
	var position int
	if err := echo.PathParamsBinder(c).Int("item_id", &position).BindError(); err != nil {
		return apperrors.ValidationError("item_id must be an integer").WithField("item_id", c.Param("item_id"))
	}

	items, err := s.app.DeleteItem(c.Request().Context(), position)
	if err != nil {
		return apperrors.InternalError("failed to delete item", err).WithField("item_id", position)
	}
	return s.renderItems(c, items)
}

func (s *Server) renderItems(c echo.Context, items []string) error {
	return s.renderTemplate(c, "list.html", map[string]any{"Items": items})
}
