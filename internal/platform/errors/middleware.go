package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorRecorder counts handled errors by type.
type ErrorRecorder interface {
	RecordError(errType string)
}

type noopRecorder struct{}

func (noopRecorder) RecordError(string) {}

// Middleware converts errors returned by handlers into plain-text responses.
// Echo HTTP errors (unknown routes, binder failures, rate limiting) are
// counted and passed through to the HTTPErrorHandler.
func Middleware(recorder ErrorRecorder) echo.MiddlewareFunc {
	if recorder == nil {
		recorder = noopRecorder{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) {
				recorder.RecordError(string(typeForStatus(httpErr.Code)))
				return err
			}

			structuredErr := AsStructuredError(err)
			recorder.RecordError(string(structuredErr.Type))
			logError(c, structuredErr)

			if err := c.String(structuredErr.HTTPStatus(), structuredErr.Message); err != nil {
				return fmt.Errorf("failed to write error response: %w", err)
			}
			return nil
		}
	}
}

// HTTPErrorHandler replaces Echo's JSON error handler with plain text.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		message = http.StatusText(code)
		if msg, ok := httpErr.Message.(string); ok && msg != "" {
			message = msg
		}
	} else {
		slog.ErrorContext(c.Request().Context(), "Unhandled error", "path", c.Request().URL.Path, "error", err)
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(code)
	} else {
		writeErr = c.String(code, message)
	}
	if writeErr != nil {
		slog.Error("Failed to write error response", "error", writeErr)
	}
}

func typeForStatus(code int) ErrorType {
	switch {
	case code == http.StatusNotFound:
		return TypeNotFound
	case code >= 400 && code < 500:
		return TypeValidation
	default:
		return TypeInternal
	}
}

func logError(c echo.Context, err *Error) {
	attrs := []any{
		"error_type", err.Type,
		"message", err.Message,
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
		"status", err.HTTPStatus(),
	}

	for k, v := range err.Context {
		attrs = append(attrs, k, v)
	}

	if username, ok := c.Get("username").(string); ok {
		attrs = append(attrs, "username", username)
	}

	ctx := c.Request().Context()
	switch err.Type {
	case TypeValidation:
		slog.InfoContext(ctx, "Validation error", attrs...)
	case TypeNotFound:
		slog.InfoContext(ctx, "Not found", attrs...)
	default:
		if err.Cause != nil {
			attrs = append(attrs, "cause", err.Cause)
		}
		slog.ErrorContext(ctx, "Internal error", attrs...)
	}
}
