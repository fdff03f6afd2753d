package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/models"
)

// ProjectFilter narrows an onboarding project listing. A zero Owner means
// no ownership restriction (admin listing); Search matches clientName,
// email, companyName or projectName case-insensitively.
type ProjectFilter struct {
	Owner  primitive.ObjectID
	Search string
}

// OnboardingStore is the Mongo persistence for onboarding projects.
type OnboardingStore struct {
	coll *mongo.Collection
}

func NewOnboardingStore(coll *mongo.Collection) *OnboardingStore {
	return &OnboardingStore{coll: coll}
}

func (s *OnboardingStore) Insert(ctx context.Context, p *models.OnboardingProject) error {
	result, err := s.coll.InsertOne(ctx, p)
	if err != nil {
		return fmt.Errorf("failed to insert project: %v", err)
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		p.ID = id
	}
	return nil
}

func (s *OnboardingStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.OnboardingProject, error) {
	var project models.OnboardingProject
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&project)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch project: %v", err)
	}
	return &project, nil
}

func (s *OnboardingStore) List(ctx context.Context, filter ProjectFilter, page, limit int) ([]models.OnboardingProject, Pagination, error) {
	query := bson.M{}
	if !filter.Owner.IsZero() {
		query["createdBy"] = filter.Owner
	}
	if filter.Search != "" {
		regex := bson.M{"$regex": filter.Search, "$options": "i"}
		query["$or"] = bson.A{
			bson.M{"clientName": regex},
			bson.M{"email": regex},
			bson.M{"companyName": regex},
			bson.M{"projectName": regex},
		}
	}

	total, err := s.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("failed to count projects: %v", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := s.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("failed to fetch projects: %v", err)
	}
	defer cursor.Close(ctx)

	projects := []models.OnboardingProject{}
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, Pagination{}, fmt.Errorf("failed to decode projects: %v", err)
	}

	return projects, NewPagination(total, page, limit), nil
}

// Replace persists the full document; the embedded stage array always
// travels with its project.
func (s *OnboardingStore) Replace(ctx context.Context, p *models.OnboardingProject) error {
	result, err := s.coll.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return fmt.Errorf("failed to update project: %v", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *OnboardingStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete project: %v", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// All streams every project for the stats fold. The report is recomputed
// from scratch on each call; nothing is cached.
func (s *OnboardingStore) All(ctx context.Context) ([]models.OnboardingProject, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch projects: %v", err)
	}
	defer cursor.Close(ctx)

	projects := []models.OnboardingProject{}
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("failed to decode projects: %v", err)
	}
	return projects, nil
}
