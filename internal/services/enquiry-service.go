package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/logging"
	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/models"
	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/repository"
)

// EnquiryMailer is the outbound notification capability; the concrete
// mailer sits behind a circuit breaker.
type EnquiryMailer interface {
	Send(to, subject, body string) error
}

type EnquiryService struct {
	enquiries *repository.Repository[models.Enquiry]
	mailer    EnquiryMailer
	inbox     string
}

func NewEnquiryService(enquiries *repository.Repository[models.Enquiry], mailer EnquiryMailer, inbox string) *EnquiryService {
	return &EnquiryService{enquiries: enquiries, mailer: mailer, inbox: inbox}
}

type EnquiryInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Submit stores the enquiry and notifies the site inbox. The email is
// best-effort; a mail failure never fails the request.
func (s *EnquiryService) Submit(ctx context.Context, in EnquiryInput) (*models.Enquiry, error) {
	v := &validator{}
	v.requireString("name", in.Name)
	v.requireString("email", in.Email)
	v.requireString("message", in.Message)
	if err := v.err(); err != nil {
		return nil, err
	}

	enquiry := &models.Enquiry{
		Name:      in.Name,
		Email:     in.Email,
		Subject:   in.Subject,
		Message:   in.Message,
		CreatedAt: time.Now(),
	}
	id, err := s.enquiries.Create(ctx, enquiry)
	if err != nil {
		return nil, err
	}
	enquiry.ID = id

	if s.mailer != nil && s.inbox != "" {
		subject := fmt.Sprintf("New enquiry from %s", in.Name)
		body := fmt.Sprintf("<p><b>%s</b> (%s)</p><p>%s</p>", in.Name, in.Email, in.Message)
		if err := s.mailer.Send(s.inbox, subject, body); err != nil {
			logging.Logger.Warnf("Event ID: ENQUIRY_MAIL_FAILED, Description: Failed to notify inbox for enquiry %s: %v", enquiry.ID.Hex(), err)
		}
	}

	return enquiry, nil
}

func (s *EnquiryService) List(ctx context.Context, page, limit int) ([]models.Enquiry, repository.Pagination, error) {
	return s.enquiries.List(ctx, bson.M{}, page, limit)
}

func (s *EnquiryService) MarkHandled(ctx context.Context, id primitive.ObjectID) (*models.Enquiry, error) {
	if err := s.enquiries.Update(ctx, id, bson.M{"handled": true}); err != nil {
		return nil, err
	}
	return s.enquiries.GetByID(ctx, id)
}
