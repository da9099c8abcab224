package httpserver

import (
	"github.com/labstack/echo/v4"
	apperrors "github.com/pscheid92/hxdemo/internal/platform/errors"
)

func (s *Server) registerPagingRoutes() {
	s.echo.GET("/paging", s.handlePaging)
	s.echo.GET("/paging/:page", s.handlePage)
}

func (s *Server) handlePaging(c echo.Context) error {
	return s.renderPage(c, s.app.FirstPage(), 1)
}

// handlePage sleeps for the configured paging delay before answering.
func (s *Server) handlePage(c echo.Context) error {
	var page int
	if err := echo.PathParamsBinder(c).Int("page", &page).BindError(); err != nil {
		return apperrors.ValidationError("page must be an integer").WithField("page", c.Param("page"))
	}

	items, err := s.app.Page(c.Request().Context(), page)
	if err != nil {
		return apperrors.InternalError("failed to load page", err).WithField("page", page)
	}
	return s.renderPage(c, items, page+1)
}

func (s *Server) renderPage(c echo.Context, items []string, nextPage int) error {
	data := map[string]any{
		"Items":    items,
		"NextPage": nextPage,
	}
	return s.renderTemplate(c, "paging.html", data)
}
