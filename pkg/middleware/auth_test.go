package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"bootcamp-platform/internal/data/entity"
	"bootcamp-platform/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

var testJWTConfig = utils.JWTConfig{
	Secret:      "test-secret-test-secret-test-sec",
	ExpiryHours: 72,
}

// stubUserRepo satisfies repository.UserRepository for the Admin gate
type stubUserRepo struct {
	users map[bson.ObjectID]*entity.User
}

func (s *stubUserRepo) Create(_ context.Context, _ *entity.User) error { return nil }

func (s *stubUserRepo) FindByID(_ context.Context, id bson.ObjectID) (*entity.User, error) {
	return s.users[id], nil
}

func (s *stubUserRepo) FindByEmail(_ context.Context, _ string) (*entity.User, error) {
	return nil, nil
}

func (s *stubUserRepo) FindByVerificationToken(_ context.Context, _ string) (*entity.User, error) {
	return nil, nil
}

func (s *stubUserRepo) FindPendingAdmin(_ context.Context, _, _ string) (*entity.User, error) {
	return nil, nil
}

func (s *stubUserRepo) FindByResetToken(_ context.Context, _ string) (*entity.User, error) {
	return nil, nil
}

func (s *stubUserRepo) FindByBootcamp(_ context.Context, _ bson.ObjectID) ([]*entity.User, error) {
	return nil, nil
}

func (s *stubUserRepo) Update(_ context.Context, _ *entity.User) error { return nil }

func (s *stubUserRepo) AddBootcamp(_ context.Context, _, _ bson.ObjectID) error { return nil }

func echoUserHandler(t *testing.T, gotUserID, gotRole *string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := utils.GetUserIDFromContext(r.Context()); ok {
			*gotUserID = id
		}
		if role, ok := utils.GetRoleFromContext(r.Context()); ok {
			*gotRole = role
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthTokenFromCookie(t *testing.T) {
	token, _, err := utils.GenerateSessionToken("user-1", "user", testJWTConfig)
	require.NoError(t, err)

	var gotUserID, gotRole string
	handler := AuthToken(testJWTConfig, zap.NewNop())(echoUserHandler(t, &gotUserID, &gotRole))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/check-auth", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", gotUserID)
	assert.Equal(t, "user", gotRole)
}

func TestAuthTokenFromBearerHeader(t *testing.T) {
	token, _, err := utils.GenerateSessionToken("user-2", "admin", testJWTConfig)
	require.NoError(t, err)

	var gotUserID, gotRole string
	handler := AuthToken(testJWTConfig, zap.NewNop())(echoUserHandler(t, &gotUserID, &gotRole))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/check-auth", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-2", gotUserID)
}

func TestAuthTokenMissing(t *testing.T) {
	var gotUserID, gotRole string
	handler := AuthToken(testJWTConfig, zap.NewNop())(echoUserHandler(t, &gotUserID, &gotRole))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/check-auth", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, gotUserID)
}

func TestAuthTokenRejectsTampered(t *testing.T) {
	token, _, err := utils.GenerateSessionToken("user-3", "user", utils.JWTConfig{
		Secret:      "some-other-signing-secret-value!",
		ExpiryHours: 72,
	})
	require.NoError(t, err)

	var gotUserID, gotRole string
	handler := AuthToken(testJWTConfig, zap.NewNop())(echoUserHandler(t, &gotUserID, &gotRole))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/check-auth", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminGate(t *testing.T) {
	approved := &entity.User{Role: entity.RoleAdmin, IsAdminVerified: true}
	approved.ID = bson.NewObjectID()

	pending := &entity.User{Role: entity.RoleAdmin, IsAdminVerified: false}
	pending.ID = bson.NewObjectID()

	regular := &entity.User{Role: entity.RoleUser}
	regular.ID = bson.NewObjectID()

	repo := &stubUserRepo{users: map[bson.ObjectID]*entity.User{
		approved.ID: approved,
		pending.ID:  pending,
		regular.ID:  regular,
	}}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := Admin(repo, zap.NewNop())(next)

	cases := []struct {
		name   string
		userID string
		want   int
	}{
		{"approved admin passes", approved.ID.Hex(), http.StatusOK},
		{"pending admin forbidden", pending.ID.Hex(), http.StatusForbidden},
		{"regular user forbidden", regular.ID.Hex(), http.StatusForbidden},
		{"unknown user forbidden", bson.NewObjectID().Hex(), http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/bootcamps", nil)
			req = req.WithContext(utils.SetUserContext(req.Context(), tc.userID, "admin"))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestAdminGateWithoutAuthContext(t *testing.T) {
	repo := &stubUserRepo{users: map[bson.ObjectID]*entity.User{}}
	handler := Admin(repo, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/bootcamps", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
