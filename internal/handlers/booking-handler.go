package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/auth"
	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/models"
	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/services"
)

type BookingHandler struct {
	service *services.BookingService
}

func NewBookingHandler(service *services.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.IdentityFrom(r.Context())

	var in services.BookingInput
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}

	booking, err := h.service.Create(r.Context(), ident.UserID, in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, booking)
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.IdentityFrom(r.Context())
	page, limit := pageParams(r)

	bookings, pagination, err := h.service.ListFor(r.Context(), ident, page, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondListing(w, bookings, pagination)
}

func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.IdentityFrom(r.Context())
	id, err := objectIDParam(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}

	var body struct {
		Status models.BookingStatus `json:"status"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondError(w, err)
		return
	}

	booking, err := h.service.UpdateStatus(r.Context(), ident, id, body.Status)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, booking)
}
