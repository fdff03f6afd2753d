package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/auth"
	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/services"
)

type OfferHandler struct {
	service *services.OfferService
}

func NewOfferHandler(service *services.OfferService) *OfferHandler {
	return &OfferHandler{service: service}
}

func (h *OfferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.OfferInput
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}

	offer, err := h.service.Create(r.Context(), in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, offer)
}

func (h *OfferHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	offers, pagination, err := h.service.List(r.Context(), page, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondListing(w, offers, pagination)
}

func (h *OfferHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// Assign links an offer to a user id from the request body.
func (h *OfferHandler) Assign(w http.ResponseWriter, r *http.Request) {
	offerID, err := objectIDParam(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}

	var body struct {
		UserID string `json:"userId"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondError(w, err)
		return
	}
	userID, err := primitive.ObjectIDFromHex(body.UserID)
	if err != nil {
		respondError(w, &services.ValidationError{Fields: []services.FieldError{{Field: "userId", Message: "invalid user id"}}})
		return
	}

	assignment, err := h.service.Assign(r.Context(), offerID, userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, assignment)
}

// Assigned lists the caller's offer assignments.
func (h *OfferHandler) Assigned(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.IdentityFrom(r.Context())
	page, limit := pageParams(r)

	assignments, pagination, err := h.service.AssignedTo(r.Context(), ident.UserID, page, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondListing(w, assignments, pagination)
}
