package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/auth"
	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/models"
	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/repository"
)

type BookingService struct {
	bookings  *repository.Repository[models.Booking]
	offerings *repository.Repository[models.ServiceOffering]
}

func NewBookingService(bookings *repository.Repository[models.Booking], offerings *repository.Repository[models.ServiceOffering]) *BookingService {
	return &BookingService{bookings: bookings, offerings: offerings}
}

type BookingInput struct {
	ServiceID    string    `json:"serviceId"`
	ScheduledFor time.Time `json:"scheduledFor"`
	Note         string    `json:"note"`
}

// Create books a service for the caller. The offering's owner is resolved
// server-side so clients cannot book against an arbitrary creator.
func (s *BookingService) Create(ctx context.Context, client primitive.ObjectID, in BookingInput) (*models.Booking, error) {
	serviceID, err := primitive.ObjectIDFromHex(in.ServiceID)
	if err != nil {
		return nil, &ValidationError{Fields: []FieldError{{Field: "serviceId", Message: "invalid service id"}}}
	}

	offering, err := s.offerings.GetByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		ServiceID:    offering.ID,
		ClientID:     client,
		OwnerID:      offering.Owner,
		ScheduledFor: in.ScheduledFor,
		Status:       models.BookingPending,
		Note:         in.Note,
		CreatedAt:    time.Now(),
	}
	id, err := s.bookings.Create(ctx, booking)
	if err != nil {
		return nil, err
	}
	booking.ID = id
	return booking, nil
}

// ListFor returns bookings where the caller is either side of the deal.
func (s *BookingService) ListFor(ctx context.Context, ident auth.Identity, page, limit int) ([]models.Booking, repository.Pagination, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"clientId": ident.UserID},
		bson.M{"ownerId": ident.UserID},
	}}
	if ident.IsAdmin() {
		filter = bson.M{}
	}
	return s.bookings.List(ctx, filter, page, limit)
}

// UpdateStatus moves a booking to any of the enum states. Like stage
// transitions, ordering is not enforced.
func (s *BookingService) UpdateStatus(ctx context.Context, ident auth.Identity, id primitive.ObjectID, status models.BookingStatus) (*models.Booking, error) {
	if !status.Valid() {
		return nil, &ValidationError{Fields: []FieldError{{Field: "status", Message: "invalid booking status"}}}
	}

	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.OwnerID != ident.UserID && !ident.IsAdmin() {
		return nil, repository.ErrNotFound
	}

	if err := s.bookings.Update(ctx, id, bson.M{"status": status}); err != nil {
		return nil, err
	}
	return s.bookings.GetByID(ctx, id)
}
