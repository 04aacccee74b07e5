package adaptor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bootcamp-platform/internal/dto/request"
	"bootcamp-platform/internal/dto/response"
	"bootcamp-platform/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubAuthService lets each test script the service outcome
type stubAuthService struct {
	registerResp *response.AuthResponse
	loginResp    *response.AuthResponse
	err          error
}

func (s *stubAuthService) Register(_ context.Context, _ *request.RegisterRequest) (*response.AuthResponse, error) {
	return s.registerResp, s.err
}

func (s *stubAuthService) VerifyEmail(_ context.Context, _ *request.VerifyEmailRequest) (*response.UserResponse, error) {
	return nil, s.err
}

func (s *stubAuthService) ApproveAdmin(_ context.Context, _ *request.ApproveAdminRequest) error {
	return s.err
}

func (s *stubAuthService) Login(_ context.Context, _ *request.LoginRequest) (*response.AuthResponse, error) {
	return s.loginResp, s.err
}

func (s *stubAuthService) ForgotPassword(_ context.Context, _ string) error { return s.err }

func (s *stubAuthService) ResetPassword(_ context.Context, _, _ string) error { return s.err }

func (s *stubAuthService) CheckAuth(_ context.Context, _ string) (*response.UserResponse, error) {
	return nil, s.err
}

func newAuthHandler(svc *stubAuthService) *AuthHandler {
	config := &utils.Config{App: utils.AppConfig{Debug: true}}
	return NewAuthHandler(svc, config, zap.NewNop())
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName {
			return c
		}
	}
	return nil
}

func TestRegisterHandlerSetsCookie(t *testing.T) {
	handler := newAuthHandler(&stubAuthService{
		registerResp: &response.AuthResponse{
			Token:     "signed-token",
			ExpiresAt: time.Now().Add(72 * time.Hour),
		},
	})

	body := `{"fullname":"Ada Lovelace","email":"ada@example.com","password":"secret123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Register(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	cookie := sessionCookie(t, rec)
	require.NotNil(t, cookie)
	assert.Equal(t, "signed-token", cookie.Value)
	assert.True(t, cookie.HttpOnly)

	var envelope utils.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	assert.True(t, envelope.Success)
}

func TestRegisterHandlerRejectsBadBody(t *testing.T) {
	handler := newAuthHandler(&stubAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	handler.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterHandlerValidates(t *testing.T) {
	handler := newAuthHandler(&stubAuthService{})

	body := `{"fullname":"A","email":"not-an-email","password":"x"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var envelope utils.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	assert.False(t, envelope.Success)
	assert.NotNil(t, envelope.Errors)
}

func TestLoginHandlerMapsInvalidCredentials(t *testing.T) {
	handler := newAuthHandler(&stubAuthService{err: fmt.Errorf("invalid credentials")})

	body := `{"email":"ada@example.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, sessionCookie(t, rec))
}

func TestLogoutHandlerClearsCookie(t *testing.T) {
	handler := newAuthHandler(&stubAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()

	handler.Logout(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	cookie := sessionCookie(t, rec)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

func TestVerifyEmailHandlerMapsExpiredCode(t *testing.T) {
	handler := newAuthHandler(&stubAuthService{err: fmt.Errorf("invalid or expired verification code")})

	body := `{"code":"123456"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/verify-email", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.VerifyEmail(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
