package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/auth"
	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/services"
)

type CatalogHandler struct {
	service *services.CatalogService
}

func NewCatalogHandler(service *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

func (h *CatalogHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.IdentityFrom(r.Context())

	var in services.CourseInput
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}

	course, err := h.service.CreateCourse(r.Context(), ident.UserID, in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, course)
}

func (h *CatalogHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	courses, pagination, err := h.service.ListCourses(r.Context(), r.URL.Query().Get("category"), page, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondListing(w, courses, pagination)
}

func (h *CatalogHandler) FeaturedCourses(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	courses, pagination, err := h.service.FeaturedCourses(r.Context(), page, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondListing(w, courses, pagination)
}

func (h *CatalogHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	course, err := h.service.GetCourse(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, course)
}

func (h *CatalogHandler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.IdentityFrom(r.Context())
	id, err := objectIDParam(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}

	var in services.CourseInput
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}

	course, err := h.service.UpdateCourse(r.Context(), ident, id, in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, course)
}

func (h *CatalogHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.IdentityFrom(r.Context())
	id, err := objectIDParam(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.service.DeleteCourse(r.Context(), ident, id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CatalogHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.IdentityFrom(r.Context())

	var in services.ServiceInput
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}

	offering, err := h.service.CreateService(r.Context(), ident.UserID, in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, offering)
}

func (h *CatalogHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	owner := primitive.NilObjectID
	if ownerHex := r.URL.Query().Get("owner"); ownerHex != "" {
		parsed, err := primitive.ObjectIDFromHex(ownerHex)
		if err == nil {
			owner = parsed
		}
	}

	offerings, pagination, err := h.service.ListServices(r.Context(), owner, page, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondListing(w, offerings, pagination)
}

func (h *CatalogHandler) FeaturedServices(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	offerings, pagination, err := h.service.FeaturedServices(r.Context(), page, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondListing(w, offerings, pagination)
}

func (h *CatalogHandler) GetService(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	offering, err := h.service.GetService(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, offering)
}

func (h *CatalogHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.IdentityFrom(r.Context())
	id, err := objectIDParam(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}

	var in services.ServiceInput
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}

	offering, err := h.service.UpdateService(r.Context(), ident, id, in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, offering)
}

func (h *CatalogHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.IdentityFrom(r.Context())
	id, err := objectIDParam(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.service.DeleteService(r.Context(), ident, id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
