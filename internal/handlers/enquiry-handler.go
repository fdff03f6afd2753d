package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/services"
)

type EnquiryHandler struct {
	service *services.EnquiryService
}

func NewEnquiryHandler(service *services.EnquiryService) *EnquiryHandler {
	return &EnquiryHandler{service: service}
}

func (h *EnquiryHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var in services.EnquiryInput
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}

	enquiry, err := h.service.Submit(r.Context(), in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, enquiry)
}

func (h *EnquiryHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	enquiries, pagination, err := h.service.List(r.Context(), page, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondListing(w, enquiries, pagination)
}

func (h *EnquiryHandler) MarkHandled(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	enquiry, err := h.service.MarkHandled(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, enquiry)
}
