package httpserver

import (
	"html/template"

	"github.com/labstack/echo/v4"
	apperrors "github.com/pscheid92/hxdemo/internal/platform/errors"
	"github.com/pscheid92/hxdemo/internal/waveform"
)

const jpegDataURIPrefix = "data:image/jpeg;base64,"

func (s *Server) registerPlotRoutes(rateLimiter echo.MiddlewareFunc) {
	s.echo.GET("/plot", s.handlePlot)
	s.echo.GET("/plot_internal", s.handlePlotInternal, rateLimiter)
}

func (s *Server) handlePlot(c echo.Context) error {
	params := waveform.DefaultParams()

	image, err := s.app.Plot(c.Request().Context(), params)
	if err != nil {
		return apperrors.InternalError("failed to render plot", err)
	}

	data := map[string]any{
		"Params":   params,
		"ImageURL": imageURL(image),
	}
	return s.renderTemplate(c, "plot.html", data)
}

// handlePlotInternal returns a bare <img> for in-place replacement. Every
// parameter is optional; missing ones keep their default.
func (s *Server) handlePlotInternal(c echo.Context) error {
	params := waveform.DefaultParams()
	err := echo.FormFieldBinder(c).
		Float64("amp1", &params.Amp1).
		Float64("amp2", &params.Amp2).
		Float64("freq1", &params.Freq1).
		Float64("freq2", &params.Freq2).
		Float64("phase1", &params.Phase1).
		Float64("phase2", &params.Phase2).
		BindError()
	if err != nil {
		return apperrors.ValidationError("waveform parameters must be numbers").WithField("query", c.QueryString())
	}

	image, err := s.app.Plot(c.Request().Context(), params)
	if err != nil {
		return apperrors.InternalError("failed to render plot", err).WithField("params", params)
	}

	return s.renderTemplate(c, "plot_image.html", map[string]any{"ImageURL": imageURL(image)})
}

// imageURL marks the data URI as safe so html/template keeps it in src.
func imageURL(base64JPEG string) template.URL {
	return template.URL(jpegDataURIPrefix + base64JPEG) //nolint:gosec // renderer output is base64 only
}
