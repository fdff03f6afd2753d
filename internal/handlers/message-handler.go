package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/auth"
	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/services"
)

type MessageHandler struct {
	service *services.MessageService
}

func NewMessageHandler(service *services.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

func (h *MessageHandler) OpenConversation(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.IdentityFrom(r.Context())

	var body struct {
		Participant string `json:"participant"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondError(w, err)
		return
	}
	other, err := primitive.ObjectIDFromHex(body.Participant)
	if err != nil {
		respondError(w, &services.ValidationError{Fields: []services.FieldError{{Field: "participant", Message: "invalid participant id"}}})
		return
	}

	conversation, err := h.service.OpenConversation(r.Context(), ident.UserID, other)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, conversation)
}

func (h *MessageHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.IdentityFrom(r.Context())
	page, limit := pageParams(r)

	conversations, pagination, err := h.service.ListConversations(r.Context(), ident.UserID, page, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondListing(w, conversations, pagination)
}

func (h *MessageHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.IdentityFrom(r.Context())
	id, err := objectIDParam(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}

	var body struct {
		Body string `json:"body"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondError(w, err)
		return
	}

	message, err := h.service.SendMessage(r.Context(), ident, id, body.Body)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, message)
}

func (h *MessageHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.IdentityFrom(r.Context())
	id, err := objectIDParam(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}

	page, limit := pageParams(r)
	messages, pagination, err := h.service.ListMessages(r.Context(), ident, id, page, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondListing(w, messages, pagination)
}
