package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/models"
	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/repository"
)

type OfferService struct {
	offers   *repository.Repository[models.Offer]
	assigned *repository.Repository[models.AssignedOffer]
}

func NewOfferService(offers *repository.Repository[models.Offer], assigned *repository.Repository[models.AssignedOffer]) *OfferService {
	return &OfferService{offers: offers, assigned: assigned}
}

type OfferInput struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DiscountPct float64   `json:"discountPct"`
	ValidUntil  time.Time `json:"validUntil"`
}

func (s *OfferService) Create(ctx context.Context, in OfferInput) (*models.Offer, error) {
	v := &validator{}
	v.requireString("title", in.Title)
	if in.DiscountPct < 0 || in.DiscountPct > 100 {
		v.addError("discountPct", "discountPct must be between 0 and 100")
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	offer := &models.Offer{
		Title:       in.Title,
		Description: in.Description,
		DiscountPct: in.DiscountPct,
		ValidUntil:  in.ValidUntil,
		CreatedAt:   time.Now(),
	}
	id, err := s.offers.Create(ctx, offer)
	if err != nil {
		return nil, err
	}
	offer.ID = id
	return offer, nil
}

func (s *OfferService) List(ctx context.Context, page, limit int) ([]models.Offer, repository.Pagination, error) {
	return s.offers.List(ctx, bson.M{}, page, limit)
}

func (s *OfferService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.offers.Delete(ctx, id)
}

// Assign attaches an offer to a user. Re-assigning the same pair creates a
// second record; there is no uniqueness constraint on the pair.
func (s *OfferService) Assign(ctx context.Context, offerID, userID primitive.ObjectID) (*models.AssignedOffer, error) {
	if _, err := s.offers.GetByID(ctx, offerID); err != nil {
		return nil, err
	}

	assignment := &models.AssignedOffer{
		OfferID:    offerID,
		UserID:     userID,
		AssignedAt: time.Now(),
	}
	id, err := s.assigned.Create(ctx, assignment)
	if err != nil {
		return nil, err
	}
	assignment.ID = id
	return assignment, nil
}

// AssignedTo lists a user's offer assignments.
func (s *OfferService) AssignedTo(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]models.AssignedOffer, repository.Pagination, error) {
	return s.assigned.List(ctx, bson.M{"userId": userID}, page, limit)
}
