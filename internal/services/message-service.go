package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/auth"
	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/models"
	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/repository"
)

type MessageService struct {
	conversations *repository.Repository[models.Conversation]
	messages      *repository.Repository[models.Message]
}

func NewMessageService(conversations *repository.Repository[models.Conversation], messages *repository.Repository[models.Message]) *MessageService {
	return &MessageService{conversations: conversations, messages: messages}
}

// OpenConversation finds or creates the thread between the caller and the
// other participant.
func (s *MessageService) OpenConversation(ctx context.Context, caller, other primitive.ObjectID) (*models.Conversation, error) {
	if caller == other {
		return nil, &ValidationError{Fields: []FieldError{{Field: "participant", Message: "cannot open a conversation with yourself"}}}
	}

	filter := bson.M{"participants": bson.M{"$all": bson.A{caller, other}}}
	existing, err := s.conversations.FindOne(ctx, filter)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	conversation := &models.Conversation{
		Participants:  []primitive.ObjectID{caller, other},
		LastMessageAt: now,
		CreatedAt:     now,
	}
	id, err := s.conversations.Create(ctx, conversation)
	if err != nil {
		return nil, err
	}
	conversation.ID = id
	return conversation, nil
}

func (s *MessageService) ListConversations(ctx context.Context, caller primitive.ObjectID, page, limit int) ([]models.Conversation, repository.Pagination, error) {
	return s.conversations.ListSorted(ctx, bson.M{"participants": caller}, page, limit, bson.D{{Key: "lastMessageAt", Value: -1}})
}

// conversationFor loads the thread and hides it from non-participants.
func (s *MessageService) conversationFor(ctx context.Context, ident auth.Identity, id primitive.ObjectID) (*models.Conversation, error) {
	conversation, err := s.conversations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, p := range conversation.Participants {
		if p == ident.UserID {
			return conversation, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *MessageService) SendMessage(ctx context.Context, ident auth.Identity, conversationID primitive.ObjectID, body string) (*models.Message, error) {
	if body == "" {
		return nil, &ValidationError{Fields: []FieldError{{Field: "body", Message: "body is required"}}}
	}

	conversation, err := s.conversationFor(ctx, ident, conversationID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	message := &models.Message{
		ConversationID: conversation.ID,
		Sender:         ident.UserID,
		Body:           body,
		SentAt:         now,
	}
	id, err := s.messages.Create(ctx, message)
	if err != nil {
		return nil, err
	}
	message.ID = id

	if err := s.conversations.Update(ctx, conversation.ID, bson.M{"lastMessageAt": now}); err != nil {
		return nil, err
	}
	return message, nil
}

func (s *MessageService) ListMessages(ctx context.Context, ident auth.Identity, conversationID primitive.ObjectID, page, limit int) ([]models.Message, repository.Pagination, error) {
	if _, err := s.conversationFor(ctx, ident, conversationID); err != nil {
		return nil, repository.Pagination{}, err
	}
	return s.messages.ListSorted(ctx, bson.M{"conversationId": conversationID}, page, limit, bson.D{{Key: "sentAt", Value: 1}})
}
