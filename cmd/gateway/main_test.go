package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/auth"
	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/models"
)

type backendStub struct {
	hits     int
	lastRole string
}

func (b *backendStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.hits++
	b.lastRole = r.Header.Get("X-User-Role")
	w.WriteHeader(http.StatusOK)
}

func bearerFor(t *testing.T, manager *auth.JWTManager, role string) string {
	t.Helper()
	token, err := manager.Generate(&models.User{
		ID:    primitive.NewObjectID(),
		Email: "asha@example.com",
		Role:  role,
	})
	require.NoError(t, err)
	return "Bearer " + token
}

func TestGatewayForwardsNestedPublicReads(t *testing.T) {
	manager := auth.NewJWTManager("test-secret")
	backend := &backendStub{}
	gw := newGatewayMux(manager, backend)

	id := primitive.NewObjectID().Hex()
	paths := []string{
		"/courses",
		"/courses/featured",
		"/courses/" + id,
		"/services",
		"/services/featured",
		"/services/" + id,
		"/testimonials",
	}
	for _, path := range paths {
		rec := httptest.NewRecorder()
		gw.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
	assert.Equal(t, len(paths), backend.hits)
}

func TestGatewayGatesNestedMutations(t *testing.T) {
	manager := auth.NewJWTManager("test-secret")
	backend := &backendStub{}
	gw := newGatewayMux(manager, backend)
	id := primitive.NewObjectID().Hex()

	// No token.
	rec := httptest.NewRecorder()
	gw.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/testimonials/"+id+"/approve", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	gw.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/enquiries/"+id+"/handled", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Wrong role.
	req := httptest.NewRequest(http.MethodPut, "/courses/"+id, nil)
	req.Header.Set("Authorization", bearerFor(t, manager, models.RoleClient))
	rec = httptest.NewRecorder()
	gw.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	assert.Equal(t, 0, backend.hits)

	// Allowed roles reach the backend with identity headers attached.
	req = httptest.NewRequest(http.MethodPut, "/courses/"+id, nil)
	req.Header.Set("Authorization", bearerFor(t, manager, models.RoleCreator))
	rec = httptest.NewRecorder()
	gw.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.RoleCreator, backend.lastRole)

	req = httptest.NewRequest(http.MethodDelete, "/services/"+id, nil)
	req.Header.Set("Authorization", bearerFor(t, manager, models.RoleAdmin))
	rec = httptest.NewRecorder()
	gw.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodPatch, "/enquiries/"+id+"/handled", nil)
	req.Header.Set("Authorization", bearerFor(t, manager, models.RoleAdmin))
	rec = httptest.NewRecorder()
	gw.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.RoleAdmin, backend.lastRole)

	assert.Equal(t, 3, backend.hits)
}

func TestGatewayOnboardingRequiresToken(t *testing.T) {
	manager := auth.NewJWTManager("test-secret")
	backend := &backendStub{}
	gw := newGatewayMux(manager, backend)

	rec := httptest.NewRecorder()
	gw.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/client-onboarding", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/client-onboarding", nil)
	req.Header.Set("Authorization", bearerFor(t, manager, models.RoleClient))
	rec = httptest.NewRecorder()
	gw.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, backend.hits)
}
