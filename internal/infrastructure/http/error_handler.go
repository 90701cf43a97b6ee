package http

import (
	"errors"
	"fmt"
	"net/http"

	domainerrors "github.com/HYKY/hyky-services/internal/domain/errors"
	"github.com/HYKY/hyky-services/internal/infrastructure/http/response"
	pkgerrors "github.com/HYKY/hyky-services/pkg/errors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	notFoundDescription = "The requested resource wasn't found or is inaccessible."
	notAllowedTitle     = "Not Allowed"
)

// NewErrorHandler returns an echo error handler writing the error envelope.
// Descriptions of 5xx errors are replaced by the status text unless the
// responder runs in dev mode.
func NewErrorHandler(logger *zap.Logger, responder response.Responder) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, description := classify(err)
		title := http.StatusText(status)

		switch status {
		case http.StatusNotFound:
			description = notFoundDescription
		case http.StatusMethodNotAllowed:
			title = notAllowedTitle
			allow := c.Response().Header().Get(echo.HeaderAllow)
			c.Response().Header().Set(echo.HeaderAccessControlAllowMethods, allow)
			description = fmt.Sprintf("Method not allowed. Must be one of: %s.", allow)
		}

		if status >= http.StatusInternalServerError {
			pkgerrors.LogError(logger, err, "Request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
			)
			description = http.StatusText(status)
			if responder.DevMode {
				description = err.Error()
			}
		}
		if description == "" {
			description = http.StatusText(status)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = responder.Error(c, status, title, description, nil)
		}
		if err != nil {
			logger.Error("Failed to write error response", zap.Error(err))
		}
	}
}

// classify returns the status of err and the description safe to show.
func classify(err error) (int, string) {
	var authErr *domainerrors.AuthError
	if errors.As(err, &authErr) {
		return pkgerrors.ToHTTPStatus(authErr.Code()), authErr.Message
	}

	appErr := pkgerrors.FromHTTPError(err)
	return appErr.Status(), appErr.Message()
}
