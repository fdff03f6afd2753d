package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/models"
	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/repository"
)

type TestimonialService struct {
	testimonials *repository.Repository[models.Testimonial]
}

func NewTestimonialService(testimonials *repository.Repository[models.Testimonial]) *TestimonialService {
	return &TestimonialService{testimonials: testimonials}
}

type TestimonialInput struct {
	Author  string `json:"author"`
	Email   string `json:"email"`
	Content string `json:"content"`
	Rating  int    `json:"rating"`
}

// Submit stores a new testimonial awaiting moderation.
func (s *TestimonialService) Submit(ctx context.Context, in TestimonialInput) (*models.Testimonial, error) {
	v := &validator{}
	v.requireString("author", in.Author)
	v.requireString("content", in.Content)
	if in.Rating < 1 || in.Rating > 5 {
		v.addError("rating", "rating must be between 1 and 5")
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	testimonial := &models.Testimonial{
		Author:    in.Author,
		Email:     in.Email,
		Content:   in.Content,
		Rating:    in.Rating,
		Approved:  false,
		CreatedAt: time.Now(),
	}
	id, err := s.testimonials.Create(ctx, testimonial)
	if err != nil {
		return nil, err
	}
	testimonial.ID = id
	return testimonial, nil
}

// ListApproved is the public view; unmoderated entries stay hidden.
func (s *TestimonialService) ListApproved(ctx context.Context, page, limit int) ([]models.Testimonial, repository.Pagination, error) {
	return s.testimonials.List(ctx, bson.M{"approved": true}, page, limit)
}

// ListAll is the admin moderation queue.
func (s *TestimonialService) ListAll(ctx context.Context, page, limit int) ([]models.Testimonial, repository.Pagination, error) {
	return s.testimonials.List(ctx, bson.M{}, page, limit)
}

func (s *TestimonialService) Approve(ctx context.Context, id primitive.ObjectID) (*models.Testimonial, error) {
	if err := s.testimonials.Update(ctx, id, bson.M{"approved": true}); err != nil {
		return nil, err
	}
	return s.testimonials.GetByID(ctx, id)
}

func (s *TestimonialService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.testimonials.Delete(ctx, id)
}
