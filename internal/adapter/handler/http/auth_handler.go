package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/HYKY/hyky-services/internal/domain/entity"
	domainerrors "github.com/HYKY/hyky-services/internal/domain/errors"
	"github.com/HYKY/hyky-services/internal/infrastructure/http/middleware"
	"github.com/HYKY/hyky-services/internal/infrastructure/http/response"
	"github.com/HYKY/hyky-services/internal/usecase/dto"
	"github.com/HYKY/hyky-services/internal/usecase/interfaces"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthHandler handles login, token validation and the caller's own data.
type AuthHandler struct {
	logger          *zap.Logger
	responder       response.Responder
	tokenHeader     string
	authUseCase     interfaces.AuthUseCase
	tokenUseCase    interfaces.TokenUseCase
	auditLogUseCase interfaces.AuditLogUseCase
}

// NewAuthHandler creates a new auth handler instance
func NewAuthHandler(
	logger *zap.Logger,
	responder response.Responder,
	tokenHeader string,
	authUC interfaces.AuthUseCase,
	tokenUC interfaces.TokenUseCase,
	auditLogUC interfaces.AuditLogUseCase,
) *AuthHandler {
	if tokenHeader == "" {
		tokenHeader = middleware.DefaultTokenHeader
	}
	return &AuthHandler{
		logger:          logger,
		responder:       responder,
		tokenHeader:     tokenHeader,
		authUseCase:     authUC,
		tokenUseCase:    tokenUC,
		auditLogUseCase: auditLogUC,
	}
}

// loginRequest accepts every parameter name older clients send.
type loginRequest struct {
	Email    string `query:"email" form:"email" json:"email"`
	User     string `query:"user" form:"user" json:"user"`
	Username string `query:"username" form:"username" json:"username"`
	Pass     string `query:"pass" form:"pass" json:"pass"`
	Password string `query:"password" form:"password" json:"password"`
}

func (r loginRequest) identifier() string {
	for _, v := range []string{r.Email, r.User, r.Username} {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func (r loginRequest) password() string {
	if v := strings.TrimSpace(r.Pass); v != "" {
		return v
	}
	return strings.TrimSpace(r.Password)
}

// Login handles GET and POST /auth
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	// An empty identifier stays zero and Login reports it.
	identifier, _ := entity.ParseIdentifier(req.identifier())

	token, err := h.authUseCase.Login(c.Request().Context(), dto.LoginParams{
		Identifier: identifier,
		Password:   req.password(),
		IP:         c.RealIP(),
		UserAgent:  c.Request().UserAgent(),
	})
	if err != nil {
		return err
	}

	return h.responder.OK(c, dto.LoginResponse{Token: token})
}

// Validate handles POST /auth/validate. The token is read like the gate
// reads it, or from a "token" parameter.
func (h *AuthHandler) Validate(c echo.Context) error {
	token := middleware.ExtractToken(c.Request(), h.tokenHeader)
	if token == "" {
		var body struct {
			Token string `query:"token" form:"token" json:"token"`
		}
		if err := c.Bind(&body); err != nil {
			return err
		}
		token = strings.TrimSpace(body.Token)
	}

	payload, err := h.tokenUseCase.ValidateToken(c.Request().Context(), token)
	if err != nil {
		return err
	}

	userID := payload.Payload.ID
	if err := h.auditLogUseCase.AddLog(c.Request().Context(), entity.AuditLogTypeTokenValidated, map[string]interface{}{
		"ip":         c.RealIP(),
		"user_agent": c.Request().UserAgent(),
	}, &userID); err != nil {
		h.logger.Warn("Failed to audit token validation", zap.Uint("user_id", userID), zap.Error(err))
	}

	return h.responder.OK(c, payload)
}

// Me handles GET /api/v1/me
func (h *AuthHandler) Me(c echo.Context) error {
	payload, ok := middleware.PayloadFrom(c)
	if !ok {
		return domainerrors.MissingToken()
	}
	return h.responder.OK(c, payload)
}

// Activity handles GET /api/v1/me/activity
func (h *AuthHandler) Activity(c echo.Context) error {
	payload, ok := middleware.PayloadFrom(c)
	if !ok {
		return domainerrors.MissingToken()
	}

	page, err := intParam(c, "page")
	if err != nil {
		return err
	}
	limit, err := intParam(c, "limit")
	if err != nil {
		return err
	}

	logs, err := h.auditLogUseCase.GetUserLogs(c.Request().Context(), payload.Payload.ID, page, limit)
	if err != nil {
		return err
	}

	return h.responder.OK(c, logs)
}

// intParam parses an optional positive query parameter. Absent is 0.
func intParam(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name+" parameter")
	}
	return v, nil
}
