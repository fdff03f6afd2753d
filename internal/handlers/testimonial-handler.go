package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/services"
)

type TestimonialHandler struct {
	service *services.TestimonialService
}

func NewTestimonialHandler(service *services.TestimonialService) *TestimonialHandler {
	return &TestimonialHandler{service: service}
}

// Submit is public; the entry stays hidden until an admin approves it.
func (h *TestimonialHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var in services.TestimonialInput
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}

	testimonial, err := h.service.Submit(r.Context(), in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, testimonial)
}

func (h *TestimonialHandler) ListApproved(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	testimonials, pagination, err := h.service.ListApproved(r.Context(), page, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondListing(w, testimonials, pagination)
}

func (h *TestimonialHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	testimonials, pagination, err := h.service.ListAll(r.Context(), page, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondListing(w, testimonials, pagination)
}

func (h *TestimonialHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	testimonial, err := h.service.Approve(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, testimonial)
}

func (h *TestimonialHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
