package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/auth"
	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/models"
	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/repository"
	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/services"
)

type fakeProjectStore struct {
	projects map[primitive.ObjectID]*models.OnboardingProject
}

func newFakeProjectStore() *fakeProjectStore {
	return &fakeProjectStore{projects: make(map[primitive.ObjectID]*models.OnboardingProject)}
}

func (f *fakeProjectStore) Insert(_ context.Context, p *models.OnboardingProject) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	clone := *p
	f.projects[p.ID] = &clone
	return nil
}

func (f *fakeProjectStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.OnboardingProject, error) {
	p, ok := f.projects[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *p
	clone.Stages = append([]models.Stage(nil), p.Stages...)
	return &clone, nil
}

func (f *fakeProjectStore) List(_ context.Context, filter repository.ProjectFilter, page, limit int) ([]models.OnboardingProject, repository.Pagination, error) {
	matched := []models.OnboardingProject{}
	for _, p := range f.projects {
		if !filter.Owner.IsZero() && p.CreatedBy != filter.Owner {
			continue
		}
		matched = append(matched, *p)
	}
	return matched, repository.NewPagination(int64(len(matched)), page, limit), nil
}

func (f *fakeProjectStore) Replace(_ context.Context, p *models.OnboardingProject) error {
	if _, ok := f.projects[p.ID]; !ok {
		return repository.ErrNotFound
	}
	clone := *p
	clone.Stages = append([]models.Stage(nil), p.Stages...)
	f.projects[p.ID] = &clone
	return nil
}

func (f *fakeProjectStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.projects[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.projects, id)
	return nil
}

func (f *fakeProjectStore) All(_ context.Context) ([]models.OnboardingProject, error) {
	all := []models.OnboardingProject{}
	for _, p := range f.projects {
		all = append(all, *p)
	}
	return all, nil
}

// onboardingRouter wires the handler behind the same routes the production
// router uses, with a middleware that injects the given caller identity.
func onboardingRouter(h *OnboardingHandler, ident auth.Identity) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/client-onboarding", h.List).Methods(http.MethodGet)
	r.HandleFunc("/client-onboarding", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/client-onboarding/stats", h.Stats).Methods(http.MethodGet)
	r.HandleFunc("/client-onboarding/{id}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/client-onboarding/{id}", h.Update).Methods(http.MethodPut)
	r.HandleFunc("/client-onboarding/{id}", h.Delete).Methods(http.MethodDelete)
	r.HandleFunc("/client-onboarding/{id}/stage", h.UpdateStage).Methods(http.MethodPatch)
	r.HandleFunc("/client-onboarding/{id}/payment", h.UpdatePayment).Methods(http.MethodPatch)

	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		r.ServeHTTP(w, req.WithContext(auth.WithIdentity(req.Context(), ident)))
	})
}

func projectBody() map[string]interface{} {
	return map[string]interface{}{
		"clientName":  "Asha Mehta",
		"email":       "asha@example.com",
		"phone":       "+91 98000 00000",
		"companyName": "Mehta Retail",
		"projectName": "Storefront revamp",
		"techStack":   "React + Go",
		"projectType": "web",
		"totalAmount": 1000,
		"startDate":   "2026-08-01T00:00:00Z",
		"deadline":    "2026-12-01T00:00:00Z",
	}
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestOnboardingCreateAndFetch(t *testing.T) {
	store := newFakeProjectStore()
	svc := services.NewOnboardingService(store, nil)
	handler := NewOnboardingHandler(svc)
	owner := auth.Identity{UserID: primitive.NewObjectID(), Role: models.RoleCreator}
	router := onboardingRouter(handler, owner)

	rec := doJSON(t, router, http.MethodPost, "/client-onboarding", projectBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.OnboardingProject
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Len(t, created.Stages, models.StageCount)
	for _, stage := range created.Stages {
		assert.Equal(t, float64(100), stage.Payment)
	}

	rec = doJSON(t, router, http.MethodGet, "/client-onboarding/"+created.ID.Hex(), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched models.OnboardingProject
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "Asha Mehta", fetched.ClientName)
}

func TestOnboardingCreateValidation(t *testing.T) {
	store := newFakeProjectStore()
	handler := NewOnboardingHandler(services.NewOnboardingService(store, nil))
	router := onboardingRouter(handler, auth.Identity{UserID: primitive.NewObjectID(), Role: models.RoleClient})

	body := projectBody()
	body["clientName"] = ""
	rec := doJSON(t, router, http.MethodPost, "/client-onboarding", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Message string `json:"message"`
		Errors  []struct {
			Field string `json:"field"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "validation failed", resp.Message)
	require.NotEmpty(t, resp.Errors)
	assert.Equal(t, "clientName", resp.Errors[0].Field)
}

func TestOnboardingStagePatch(t *testing.T) {
	store := newFakeProjectStore()
	svc := services.NewOnboardingService(store, nil)
	handler := NewOnboardingHandler(svc)
	owner := auth.Identity{UserID: primitive.NewObjectID(), Role: models.RoleCreator}
	router := onboardingRouter(handler, owner)

	rec := doJSON(t, router, http.MethodPost, "/client-onboarding", projectBody())
	require.Equal(t, http.StatusCreated, rec.Code)
	var created models.OnboardingProject
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(t, router, http.MethodPatch,
		fmt.Sprintf("/client-onboarding/%s/stage", created.ID.Hex()),
		map[string]interface{}{"stageId": 1, "status": "done"})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.OnboardingProject
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, models.StageDone, updated.Stages[0].Status)
	assert.NotEmpty(t, updated.Stages[0].CompletionDate)
	for _, stage := range updated.Stages[1:] {
		assert.Equal(t, models.StagePending, stage.Status)
	}
}

func TestOnboardingStagePatchLegacyIndex(t *testing.T) {
	store := newFakeProjectStore()
	svc := services.NewOnboardingService(store, nil)
	handler := NewOnboardingHandler(svc)
	owner := auth.Identity{UserID: primitive.NewObjectID(), Role: models.RoleClient}
	router := onboardingRouter(handler, owner)

	rec := doJSON(t, router, http.MethodPost, "/client-onboarding", projectBody())
	require.Equal(t, http.StatusCreated, rec.Code)
	var created models.OnboardingProject
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	// stageIndex is zero-based, so index 2 addresses stage id 3.
	rec = doJSON(t, router, http.MethodPatch,
		fmt.Sprintf("/client-onboarding/%s/stage", created.ID.Hex()),
		map[string]interface{}{"stageIndex": 2, "status": "in-progress"})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.OnboardingProject
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, models.StageInProgress, updated.Stages[2].Status)
}

func TestOnboardingStagePatchUnknownStage(t *testing.T) {
	store := newFakeProjectStore()
	handler := NewOnboardingHandler(services.NewOnboardingService(store, nil))
	owner := auth.Identity{UserID: primitive.NewObjectID(), Role: models.RoleClient}
	router := onboardingRouter(handler, owner)

	rec := doJSON(t, router, http.MethodPost, "/client-onboarding", projectBody())
	require.Equal(t, http.StatusCreated, rec.Code)
	var created models.OnboardingProject
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(t, router, http.MethodPatch,
		fmt.Sprintf("/client-onboarding/%s/stage", created.ID.Hex()),
		map[string]interface{}{"stageId": 42, "status": "done"})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "stage not found")
}

func TestOnboardingForeignProjectReads404(t *testing.T) {
	store := newFakeProjectStore()
	svc := services.NewOnboardingService(store, nil)
	handler := NewOnboardingHandler(svc)

	owner := auth.Identity{UserID: primitive.NewObjectID(), Role: models.RoleCreator}
	rec := doJSON(t, onboardingRouter(handler, owner), http.MethodPost, "/client-onboarding", projectBody())
	require.Equal(t, http.StatusCreated, rec.Code)
	var created models.OnboardingProject
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	stranger := auth.Identity{UserID: primitive.NewObjectID(), Role: models.RoleClient}
	rec = doJSON(t, onboardingRouter(handler, stranger), http.MethodGet, "/client-onboarding/"+created.ID.Hex(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not found")
}

func TestOnboardingListEnvelope(t *testing.T) {
	store := newFakeProjectStore()
	svc := services.NewOnboardingService(store, nil)
	handler := NewOnboardingHandler(svc)
	owner := auth.Identity{UserID: primitive.NewObjectID(), Role: models.RoleCreator}
	router := onboardingRouter(handler, owner)

	rec := doJSON(t, router, http.MethodPost, "/client-onboarding", projectBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/client-onboarding?page=1&limit=10", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data       []models.OnboardingProject `json:"data"`
		Pagination repository.Pagination      `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, int64(1), resp.Pagination.Total)
	assert.Equal(t, 1, resp.Pagination.Pages)
}

func TestOnboardingInvalidIDFormat(t *testing.T) {
	store := newFakeProjectStore()
	handler := NewOnboardingHandler(services.NewOnboardingService(store, nil))
	router := onboardingRouter(handler, auth.Identity{UserID: primitive.NewObjectID(), Role: models.RoleClient})

	rec := doJSON(t, router, http.MethodGet, "/client-onboarding/not-an-id", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOnboardingPaymentPatch(t *testing.T) {
	store := newFakeProjectStore()
	handler := NewOnboardingHandler(services.NewOnboardingService(store, nil))
	owner := auth.Identity{UserID: primitive.NewObjectID(), Role: models.RoleClient}
	router := onboardingRouter(handler, owner)

	rec := doJSON(t, router, http.MethodPost, "/client-onboarding", projectBody())
	require.Equal(t, http.StatusCreated, rec.Code)
	var created models.OnboardingProject
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(t, router, http.MethodPatch,
		fmt.Sprintf("/client-onboarding/%s/payment", created.ID.Hex()),
		map[string]interface{}{"paidAmount": 250.0})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.OnboardingProject
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, float64(250), updated.PaidAmount)

	rec = doJSON(t, router, http.MethodPatch,
		fmt.Sprintf("/client-onboarding/%s/payment", created.ID.Hex()),
		map[string]interface{}{"paidAmount": -1.0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
