package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/models"
)

type memRevoker struct {
	revoked map[string]bool
}

func newMemRevoker() *memRevoker { return &memRevoker{revoked: make(map[string]bool)} }

func (m *memRevoker) Revoke(_ context.Context, jti string, _ time.Duration) error {
	m.revoked[jti] = true
	return nil
}

func (m *memRevoker) IsRevoked(_ context.Context, jti string) (bool, error) {
	return m.revoked[jti], nil
}

func testUser() *models.User {
	return &models.User{
		ID:    primitive.NewObjectID(),
		Email: "asha@example.com",
		Role:  models.RoleCreator,
	}
}

func TestGenerateParseRoundTrip(t *testing.T) {
	manager := NewJWTManager("test-secret")
	user := testUser()

	token, err := manager.Generate(user)
	require.NoError(t, err)

	claims, err := manager.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, models.RoleCreator, claims.Role)
	assert.NotEmpty(t, claims.ID, "jti must be set for revocation")
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := NewJWTManager("secret-a").Generate(testUser())
	require.NoError(t, err)

	_, err = NewJWTManager("secret-b").Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := NewJWTManager("test-secret").Parse("not.a.token")
	assert.Error(t, err)
}

func okHandler() (http.Handler, *bool) {
	called := false
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		ident, ok := IdentityFrom(r.Context())
		if !ok || ident.UserID.IsZero() {
			http.Error(w, "no identity", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}), &called
}

func TestAuthenticateMissingHeader(t *testing.T) {
	middleware := NewMiddleware(NewJWTManager("test-secret"), newMemRevoker())
	next, called := okHandler()

	rec := httptest.NewRecorder()
	middleware.Authenticate(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/client-onboarding", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *called)
}

func TestAuthenticateValidToken(t *testing.T) {
	manager := NewJWTManager("test-secret")
	middleware := NewMiddleware(manager, newMemRevoker())
	next, called := okHandler()

	token, err := manager.Generate(testUser())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/client-onboarding", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	middleware.Authenticate(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *called)
}

func TestAuthenticateRevokedToken(t *testing.T) {
	manager := NewJWTManager("test-secret")
	revoker := newMemRevoker()
	middleware := NewMiddleware(manager, revoker)
	next, called := okHandler()

	token, err := manager.Generate(testUser())
	require.NoError(t, err)
	claims, err := manager.Parse(token)
	require.NoError(t, err)
	require.NoError(t, revoker.Revoke(context.Background(), claims.ID, time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/client-onboarding", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	middleware.Authenticate(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *called)
}

func TestRequireRole(t *testing.T) {
	middleware := NewMiddleware(NewJWTManager("test-secret"), newMemRevoker())
	next, _ := okHandler()
	adminOnly := middleware.RequireRole(models.RoleAdmin)(next)

	asRole := func(role string) *httptest.ResponseRecorder {
		ident := Identity{UserID: primitive.NewObjectID(), Role: role}
		req := httptest.NewRequest(http.MethodGet, "/client-onboarding/stats", nil)
		req = req.WithContext(WithIdentity(req.Context(), ident))
		rec := httptest.NewRecorder()
		adminOnly.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, asRole(models.RoleAdmin).Code)
	assert.Equal(t, http.StatusForbidden, asRole(models.RoleCreator).Code)
	assert.Equal(t, http.StatusForbidden, asRole(models.RoleClient).Code)

	// No identity at all means the middleware chain was bypassed.
	req := httptest.NewRequest(http.MethodGet, "/client-onboarding/stats", nil)
	rec := httptest.NewRecorder()
	adminOnly.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPasswordPolicy(t *testing.T) {
	assert.Error(t, ValidatePassword("short1"))
	assert.Error(t, ValidatePassword("lettersonly"))
	assert.Error(t, ValidatePassword("12345678"))
	assert.NoError(t, ValidatePassword("correct1horse"))
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct1horse")
	require.NoError(t, err)
	assert.NoError(t, CheckPassword(hash, "correct1horse"))
	assert.Error(t, CheckPassword(hash, "wrong1horse"))
}
