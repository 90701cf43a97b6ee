package errors

import (
	"go.uber.org/zap"
)

// LogError logs err with its code. 5xx errors are logged at error level,
// everything else at warn.
func LogError(logger *zap.Logger, err error, msg string, fields ...zap.Field) {
	if err == nil {
		return
	}

	code := CodeOf(err)
	allFields := make([]zap.Field, 0, len(fields)+2)
	allFields = append(allFields, zap.Error(err), zap.String("error_code", code))
	allFields = append(allFields, fields...)

	if ToHTTPStatus(code) >= 500 {
		logger.Error(msg, allFields...)
		return
	}
	logger.Warn(msg, allFields...)
}
