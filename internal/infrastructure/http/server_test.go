package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	handlers "github.com/HYKY/hyky-services/internal/adapter/handler/http"
	"github.com/HYKY/hyky-services/internal/domain/entity"
	domainerrors "github.com/HYKY/hyky-services/internal/domain/errors"
	"github.com/HYKY/hyky-services/internal/infrastructure/http/middleware"
	"github.com/HYKY/hyky-services/internal/infrastructure/http/response"
	"github.com/HYKY/hyky-services/internal/infrastructure/metrics"
	"github.com/HYKY/hyky-services/internal/usecase/dto"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) Login(ctx context.Context, params dto.LoginParams) (string, error) {
	args := m.Called(ctx, params)
	return args.String(0), args.Error(1)
}

type MockTokenUseCase struct {
	mock.Mock
}

func (m *MockTokenUseCase) ValidateToken(ctx context.Context, token string) (*entity.TokenPayload, error) {
	args := m.Called(ctx, token)
	payload, _ := args.Get(0).(*entity.TokenPayload)
	return payload, args.Error(1)
}

func (m *MockTokenUseCase) VerifySession(ctx context.Context, token string) (*entity.TokenPayload, error) {
	args := m.Called(ctx, token)
	payload, _ := args.Get(0).(*entity.TokenPayload)
	return payload, args.Error(1)
}

type MockAuditLogUseCase struct {
	mock.Mock
}

func (m *MockAuditLogUseCase) AddLog(ctx context.Context, logType entity.AuditLogType, content map[string]interface{}, userID *uint) error {
	args := m.Called(ctx, logType, content, userID)
	return args.Error(0)
}

func (m *MockAuditLogUseCase) GetUserLogs(ctx context.Context, userID uint, page, limit int) (*dto.AuditLogPage, error) {
	args := m.Called(ctx, userID, page, limit)
	result, _ := args.Get(0).(*dto.AuditLogPage)
	return result, args.Error(1)
}

type serverFixture struct {
	server  *Server
	metrics *metrics.Metrics
	auth    *MockAuthUseCase
	token   *MockTokenUseCase
	audit   *MockAuditLogUseCase
}

func newServerFixture() *serverFixture {
	f := &serverFixture{
		metrics: metrics.New(),
		auth:    new(MockAuthUseCase),
		token:   new(MockTokenUseCase),
		audit:   new(MockAuditLogUseCase),
	}
	logger := zap.NewNop()
	responder := response.Responder{}

	f.server = NewServer(Config{Port: "0", Timeout: 5}, logger, f.metrics, responder)
	f.server.RegisterRoutes(Routes{
		Gate: middleware.Gate(middleware.GateConfig{
			Paths:        []string{"/api/v1"},
			Passthroughs: []string{"/auth", "/api/v1/auth", "/api/v1/healthcheck", "/metrics"},
			TokenUseCase: f.token,
			Responder:    responder,
			Logger:       logger,
			Metrics:      f.metrics,
		}),
		Auth: handlers.NewAuthHandler(logger, responder, "", f.auth, f.token, f.audit),
		Info: handlers.NewInfoHandler(responder, "HYKY : Services", "0.0.1"),
	})
	return f
}

func (f *serverFixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.server.Router().ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var env struct {
		Code   int                    `json:"code"`
		Result map[string]interface{} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, rec.Code, env.Code)
	return env.Result
}

func TestServer_UnknownRoute(t *testing.T) {
	f := newServerFixture()

	rec := f.do(httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "The requested resource wasn't found or is inaccessible.", decodeEnvelope(t, rec)["description"])
}

func TestServer_MethodNotAllowed(t *testing.T) {
	f := newServerFixture()

	rec := f.do(httptest.NewRequest(http.MethodGet, "/auth/validate", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderAllow), http.MethodPost)
	assert.Equal(t, rec.Header().Get(echo.HeaderAllow), rec.Header().Get(echo.HeaderAccessControlAllowMethods))
	assert.Equal(t, "Not Allowed", decodeEnvelope(t, rec)["title"])
}

func TestServer_TrailingSlashIsIgnored(t *testing.T) {
	f := newServerFixture()

	rec := f.do(httptest.NewRequest(http.MethodGet, "/api/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "0.0.1", decodeEnvelope(t, rec)["version"])
}

func TestServer_DeadEnd(t *testing.T) {
	f := newServerFixture()

	rec := f.do(httptest.NewRequest(http.MethodDelete, "/api/v2", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Oops! It is a dead end!", decodeEnvelope(t, rec)["description"])
}

func TestServer_LoginIsPassthrough(t *testing.T) {
	f := newServerFixture()
	f.auth.On("Login", mock.Anything, mock.Anything).Return("signed.token", nil)

	for _, target := range []string{"/auth", "/api/v1/auth"} {
		form := url.Values{"email": {"admin@hyky.games"}, "pass": {"secret"}}
		req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
		req.Header.Set(echo.HeaderAuthorization, "stale.token")

		rec := f.do(req)
		require.Equal(t, http.StatusOK, rec.Code, target)
		assert.Equal(t, "signed.token", decodeEnvelope(t, rec)["token"])
	}
	f.token.AssertNotCalled(t, "VerifySession", mock.Anything, mock.Anything)
}

func TestServer_LoginFailure(t *testing.T) {
	f := newServerFixture()
	f.auth.On("Login", mock.Anything, mock.Anything).Return("", domainerrors.InvalidCredentials())

	rec := f.do(httptest.NewRequest(http.MethodGet, "/auth?user=admin&pass=wrong", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid username/e-mail address or password.", decodeEnvelope(t, rec)["description"])
}

func TestServer_ProtectedRoute(t *testing.T) {
	f := newServerFixture()
	f.token.On("VerifySession", mock.Anything, "").Return(nil, domainerrors.MissingToken())
	f.token.On("VerifySession", mock.Anything, "signed.token").Return(&entity.TokenPayload{
		Payload: entity.UserProfile{ID: 3, Username: "admin"},
	}, nil)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/api/v1/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid Access Token", decodeEnvelope(t, rec)["title"])

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer signed.token")
	rec = f.do(req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin", decodeEnvelope(t, rec)["payload"].(map[string]interface{})["username"])
}

func TestServer_GateStoreFailure(t *testing.T) {
	f := newServerFixture()
	f.token.On("VerifySession", mock.Anything, "tok").Return(nil, domainerrors.Internal(errors.New("redis: connection refused")))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "tok")
	rec := f.do(req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestServer_MetricsEndpoint(t *testing.T) {
	f := newServerFixture()

	f.do(httptest.NewRequest(http.MethodGet, "/", nil))
	rec := f.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "hyky_gate_decisions_total")
	assert.Contains(t, rec.Body.String(), "hyky_http_requests_total")
}

func TestServer_StartStop(t *testing.T) {
	f := newServerFixture()

	errCh := make(chan error, 1)
	go func() {
		errCh <- f.server.Start()
	}()

	require.Eventually(t, func() bool {
		return f.server.Router().ListenerAddr() != nil
	}, 5*time.Second, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, f.server.Stop(ctx))
	assert.ErrorIs(t, <-errCh, http.ErrServerClosed)
}
