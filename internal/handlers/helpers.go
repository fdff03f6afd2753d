package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/logging"
	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/repository"
	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/services"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// respondListing wraps a page of results in the standard envelope.
func respondListing(w http.ResponseWriter, data interface{}, pagination repository.Pagination) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"data":       data,
		"pagination": pagination,
	})
}

// respondError maps service errors onto the HTTP taxonomy: validation to
// 400 with field messages, hidden-or-missing to 404, everything else 500.
func respondError(w http.ResponseWriter, err error) {
	var validation *services.ValidationError
	switch {
	case errors.As(err, &validation):
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"message": "validation failed",
			"errors":  validation.Fields,
		})
	case errors.Is(err, repository.ErrNotFound):
		respondMessage(w, http.StatusNotFound, "not found")
	case errors.Is(err, services.ErrStageNotFound):
		respondMessage(w, http.StatusNotFound, "stage not found")
	default:
		logging.Logger.Errorf("Event ID: REQUEST_FAILED, Description: Unhandled error: %v", err)
		respondMessage(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &services.ValidationError{Fields: []services.FieldError{{Field: "body", Message: "invalid request payload"}}}
	}
	return nil
}

// pageParams reads page/limit query parameters with sane bounds.
func pageParams(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func objectIDParam(value string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(value)
	if err != nil {
		return primitive.NilObjectID, &services.ValidationError{Fields: []services.FieldError{{Field: "id", Message: "invalid id format"}}}
	}
	return id, nil
}
