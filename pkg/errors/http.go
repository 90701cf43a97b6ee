package errors

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// FromHTTPError converts err into an AppError. An echo HTTP error keeps its
// status and string message. Any other error becomes ErrInternal.
func FromHTTPError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if As(err, &appErr) {
		return appErr
	}

	var echoErr *echo.HTTPError
	if As(err, &echoErr) {
		msg, ok := echoErr.Message.(string)
		if !ok {
			msg = http.StatusText(echoErr.Code)
		}
		converted := NewAppError(httpStatusToCode(echoErr.Code), msg, echoErr.Internal)
		converted.status = echoErr.Code
		return converted
	}

	var coded Error
	if As(err, &coded) {
		return NewAppError(coded.Code(), err.Error(), err)
	}

	return NewAppError(ErrInternal, err.Error(), err)
}
