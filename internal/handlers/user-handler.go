package handlers

import (
	"net/http"

	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/auth"
	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/logging"
	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/services"
)

type UserHandler struct {
	service *services.UserService
	revoker auth.Revoker
}

func NewUserHandler(service *services.UserService, revoker auth.Revoker) *UserHandler {
	return &UserHandler{service: service, revoker: revoker}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}

	user, err := h.service.Register(r.Context(), in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondError(w, err)
		return
	}

	user, token, err := h.service.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		// Unknown email and wrong password report the same failure.
		respondMessage(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// Logout revokes the presented token for its remaining lifetime.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.IdentityFrom(r.Context())
	if h.revoker != nil && ident.JTI != "" {
		if err := h.revoker.Revoke(r.Context(), ident.JTI, auth.TokenTTL); err != nil {
			logging.Logger.Warnf("Event ID: TOKEN_REVOKE_FAILED, Description: Failed to revoke token %s: %v", ident.JTI, err)
			respondMessage(w, http.StatusInternalServerError, "failed to log out")
			return
		}
	}
	respondMessage(w, http.StatusOK, "logged out")
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.IdentityFrom(r.Context())
	user, err := h.service.GetByID(r.Context(), ident.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.IdentityFrom(r.Context())

	var in services.ProfileInput
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), ident.UserID, in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.IdentityFrom(r.Context())

	var body struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondError(w, err)
		return
	}

	if err := h.service.ChangePassword(r.Context(), ident.UserID, body.OldPassword, body.NewPassword); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "password changed")
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	users, pagination, err := h.service.List(r.Context(), page, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondListing(w, users, pagination)
}
