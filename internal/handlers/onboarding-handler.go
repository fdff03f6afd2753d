package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/auth"
	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/models"
	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/services"
)

type OnboardingHandler struct {
	service *services.OnboardingService
}

func NewOnboardingHandler(service *services.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{service: service}
}

// List returns the caller's projects; admins may pass all=true and search=.
func (h *OnboardingHandler) List(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.IdentityFrom(r.Context())
	page, limit := pageParams(r)
	all := r.URL.Query().Get("all") == "true"
	search := r.URL.Query().Get("search")

	projects, pagination, err := h.service.List(r.Context(), ident, page, limit, all, search)
	if err != nil {
		respondError(w, err)
		return
	}
	respondListing(w, projects, pagination)
}

func (h *OnboardingHandler) Get(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.IdentityFrom(r.Context())
	id, err := objectIDParam(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}

	project, err := h.service.Get(r.Context(), ident, id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, project)
}

func (h *OnboardingHandler) Create(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.IdentityFrom(r.Context())

	var in services.ProjectInput
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}

	project, err := h.service.Create(r.Context(), ident.UserID, in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, project)
}

func (h *OnboardingHandler) Update(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.IdentityFrom(r.Context())
	id, err := objectIDParam(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}

	var in services.ProjectInput
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}

	project, err := h.service.Update(r.Context(), ident, id, in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, project)
}

func (h *OnboardingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type stagePatch struct {
	StageID int `json:"stageId"`
	// StageIndex is the legacy zero-based addressing some clients still
	// send; stageId wins when both are present.
	StageIndex *int `json:"stageIndex"`
	models.StageUpdate
}

// UpdateStage transitions one stage; any status order is allowed.
func (h *OnboardingHandler) UpdateStage(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.IdentityFrom(r.Context())
	id, err := objectIDParam(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}

	var patch stagePatch
	if err := decodeBody(r, &patch); err != nil {
		respondError(w, err)
		return
	}

	stageID := patch.StageID
	if stageID == 0 && patch.StageIndex != nil {
		stageID = *patch.StageIndex + 1
	}

	project, err := h.service.UpdateStage(r.Context(), ident, id, stageID, patch.StageUpdate)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, project)
}

func (h *OnboardingHandler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.IdentityFrom(r.Context())
	id, err := objectIDParam(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}

	var body struct {
		PaidAmount float64 `json:"paidAmount"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondError(w, err)
		return
	}

	project, err := h.service.UpdatePayment(r.Context(), ident, id, body.PaidAmount)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, project)
}

func (h *OnboardingHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
