package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/HYKY/hyky-services/internal/domain/entity"
	domainerrors "github.com/HYKY/hyky-services/internal/domain/errors"
	"github.com/HYKY/hyky-services/internal/infrastructure/http/response"
	"github.com/HYKY/hyky-services/internal/infrastructure/metrics"
	"github.com/HYKY/hyky-services/internal/usecase/interfaces"
	"github.com/HYKY/hyky-services/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// PayloadKey is the echo context key of the authorized token payload.
const PayloadKey = "auth.payload"

const (
	DefaultTokenHeader = "X-Token"

	rejectTitle       = "Invalid Access Token"
	rejectDescription = "The token provided is invalid and/or has expired."
	insecureMessage   = "Tokens are only accepted over HTTPS."
	bearerPrefix      = "Bearer "
)

// GateConfig configures Gate.
type GateConfig struct {
	// Paths lists the path prefixes that require a token.
	Paths []string
	// Passthroughs lists path prefixes exempt from the check even when
	// covered by Paths.
	Passthroughs []string
	// TokenHeader is read when Authorization is empty.
	TokenHeader string
	// SecureMode rejects protected requests not made over TLS.
	SecureMode bool

	TokenUseCase interfaces.TokenUseCase
	Responder    response.Responder
	Logger       *zap.Logger
	Metrics      *metrics.Metrics
}

// Gate returns a middleware that authorizes requests to protected paths.
// An authorized request carries its payload under PayloadKey.
func Gate(config GateConfig) echo.MiddlewareFunc {
	if config.TokenHeader == "" {
		config.TokenHeader = DefaultTokenHeader
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Method == http.MethodOptions || !config.protects(req.URL.Path) {
				config.Metrics.ObserveGate(metrics.GatePassthrough)
				return next(c)
			}

			token := ExtractToken(req, config.TokenHeader)

			if config.SecureMode && c.Scheme() != "https" {
				return config.reject(c, token, domainerrors.New(domainerrors.KindUnauthorized, insecureMessage))
			}

			payload, err := config.TokenUseCase.VerifySession(req.Context(), token)
			if err != nil {
				return config.reject(c, token, err)
			}

			config.Metrics.ObserveGate(metrics.GateAuthorized)
			c.Set(PayloadKey, payload)
			return next(c)
		}
	}
}

// protects reports whether path needs a token.
func (config GateConfig) protects(path string) bool {
	for _, p := range config.Passthroughs {
		if matchPrefix(path, p) {
			return false
		}
	}
	for _, p := range config.Paths {
		if matchPrefix(path, p) {
			return true
		}
	}
	return false
}

func (config GateConfig) reject(c echo.Context, token string, err error) error {
	config.Metrics.ObserveGate(metrics.GateRejected)

	// Store failures are not the client's fault.
	if domainerrors.KindOf(err) == domainerrors.KindInternal {
		return err
	}

	message := err.Error()
	var authErr *domainerrors.AuthError
	if errors.As(err, &authErr) {
		message = authErr.Message
	}

	config.Logger.Info("Request rejected",
		zap.String("path", c.Request().URL.Path),
		zap.String("ip", c.RealIP()),
		zap.String("token", logger.MaskToken(token)),
		zap.Error(err),
	)

	return config.Responder.Error(c, http.StatusUnauthorized, rejectTitle, rejectDescription, map[string]string{
		"message": message,
		"token":   token,
	})
}

// ExtractToken reads the token from Authorization, falling back to header.
// A "Bearer " prefix is dropped.
func ExtractToken(req *http.Request, header string) string {
	token := strings.TrimSpace(req.Header.Get(echo.HeaderAuthorization))
	if token == "" && header != "" {
		token = strings.TrimSpace(req.Header.Get(header))
	}
	if len(token) > len(bearerPrefix) && strings.EqualFold(token[:len(bearerPrefix)], bearerPrefix) {
		token = strings.TrimSpace(token[len(bearerPrefix):])
	}
	return token
}

// matchPrefix matches whole path segments, ignoring a trailing slash on
// either side. "/" matches every path.
func matchPrefix(path, prefix string) bool {
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" {
		return true
	}
	path = strings.TrimSuffix(path, "/")
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// PayloadFrom returns the payload stored by Gate.
func PayloadFrom(c echo.Context) (*entity.TokenPayload, bool) {
	payload, ok := c.Get(PayloadKey).(*entity.TokenPayload)
	return payload, ok && payload != nil
}
