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

// CatalogService covers the two listing entities: courses and service
// offerings. Mutations require the owning creator or an admin; foreign
// listings report not-found.
type CatalogService struct {
	courses  *repository.Repository[models.Course]
	services *repository.Repository[models.ServiceOffering]
}

func NewCatalogService(courses *repository.Repository[models.Course], services *repository.Repository[models.ServiceOffering]) *CatalogService {
	return &CatalogService{courses: courses, services: services}
}

type CourseInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Level       string  `json:"level"`
	Featured    bool    `json:"featured"`
	Published   bool    `json:"published"`
}

func (in *CourseInput) validate() error {
	v := &validator{}
	v.requireString("title", in.Title)
	v.requireString("description", in.Description)
	if in.Price < 0 {
		v.addError("price", "price must not be negative")
	}
	return v.err()
}

func (s *CatalogService) CreateCourse(ctx context.Context, owner primitive.ObjectID, in CourseInput) (*models.Course, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	course := &models.Course{
		Owner:       owner,
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Level:       in.Level,
		Featured:    in.Featured,
		Published:   in.Published,
		CreatedAt:   time.Now(),
	}
	id, err := s.courses.Create(ctx, course)
	if err != nil {
		return nil, err
	}
	course.ID = id
	return course, nil
}

// ListCourses returns published courses, optionally narrowed by category.
func (s *CatalogService) ListCourses(ctx context.Context, category string, page, limit int) ([]models.Course, repository.Pagination, error) {
	filter := bson.M{"published": true}
	if category != "" {
		filter["category"] = category
	}
	return s.courses.List(ctx, filter, page, limit)
}

func (s *CatalogService) FeaturedCourses(ctx context.Context, page, limit int) ([]models.Course, repository.Pagination, error) {
	return s.courses.List(ctx, bson.M{"published": true, "featured": true}, page, limit)
}

func (s *CatalogService) GetCourse(ctx context.Context, id primitive.ObjectID) (*models.Course, error) {
	return s.courses.GetByID(ctx, id)
}

func (s *CatalogService) UpdateCourse(ctx context.Context, ident auth.Identity, id primitive.ObjectID, in CourseInput) (*models.Course, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if course.Owner != ident.UserID && !ident.IsAdmin() {
		return nil, repository.ErrNotFound
	}

	set := bson.M{
		"title":       in.Title,
		"description": in.Description,
		"price":       in.Price,
		"category":    in.Category,
		"level":       in.Level,
		"featured":    in.Featured,
		"published":   in.Published,
	}
	if err := s.courses.Update(ctx, id, set); err != nil {
		return nil, err
	}
	return s.courses.GetByID(ctx, id)
}

func (s *CatalogService) DeleteCourse(ctx context.Context, ident auth.Identity, id primitive.ObjectID) error {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if course.Owner != ident.UserID && !ident.IsAdmin() {
		return repository.ErrNotFound
	}
	return s.courses.Delete(ctx, id)
}

type ServiceInput struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	DeliveryDays int     `json:"deliveryDays"`
	Category     string  `json:"category"`
	Featured     bool    `json:"featured"`
}

func (in *ServiceInput) validate() error {
	v := &validator{}
	v.requireString("title", in.Title)
	v.requireString("description", in.Description)
	if in.Price < 0 {
		v.addError("price", "price must not be negative")
	}
	return v.err()
}

func (s *CatalogService) CreateService(ctx context.Context, owner primitive.ObjectID, in ServiceInput) (*models.ServiceOffering, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	offering := &models.ServiceOffering{
		Owner:        owner,
		Title:        in.Title,
		Description:  in.Description,
		Price:        in.Price,
		DeliveryDays: in.DeliveryDays,
		Category:     in.Category,
		Featured:     in.Featured,
		CreatedAt:    time.Now(),
	}
	id, err := s.services.Create(ctx, offering)
	if err != nil {
		return nil, err
	}
	offering.ID = id
	return offering, nil
}

// ListServices returns offerings, optionally narrowed to one owner.
func (s *CatalogService) ListServices(ctx context.Context, owner primitive.ObjectID, page, limit int) ([]models.ServiceOffering, repository.Pagination, error) {
	filter := bson.M{}
	if !owner.IsZero() {
		filter["owner"] = owner
	}
	return s.services.List(ctx, filter, page, limit)
}

func (s *CatalogService) FeaturedServices(ctx context.Context, page, limit int) ([]models.ServiceOffering, repository.Pagination, error) {
	return s.services.List(ctx, bson.M{"featured": true}, page, limit)
}

func (s *CatalogService) GetService(ctx context.Context, id primitive.ObjectID) (*models.ServiceOffering, error) {
	return s.services.GetByID(ctx, id)
}

func (s *CatalogService) UpdateService(ctx context.Context, ident auth.Identity, id primitive.ObjectID, in ServiceInput) (*models.ServiceOffering, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	offering, err := s.services.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if offering.Owner != ident.UserID && !ident.IsAdmin() {
		return nil, repository.ErrNotFound
	}

	set := bson.M{
		"title":        in.Title,
		"description":  in.Description,
		"price":        in.Price,
		"deliveryDays": in.DeliveryDays,
		"category":     in.Category,
		"featured":     in.Featured,
	}
	if err := s.services.Update(ctx, id, set); err != nil {
		return nil, err
	}
	return s.services.GetByID(ctx, id)
}

func (s *CatalogService) DeleteService(ctx context.Context, ident auth.Identity, id primitive.ObjectID) error {
	offering, err := s.services.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if offering.Owner != ident.UserID && !ident.IsAdmin() {
		return repository.ErrNotFound
	}
	return s.services.Delete(ctx, id)
}
