package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound covers both "no such document" and "document exists but the
// caller may not see it"; callers cannot tell the two apart.
var ErrNotFound = errors.New("not found")

// Repository is a generic CRUD layer over a single collection. Domain
// services embed one per entity and add their filtered queries on top.
type Repository[T any] struct {
	coll *mongo.Collection
}

func New[T any](coll *mongo.Collection) *Repository[T] {
	return &Repository[T]{coll: coll}
}

func (r *Repository[T]) Collection() *mongo.Collection { return r.coll }

func (r *Repository[T]) Create(ctx context.Context, doc *T) (primitive.ObjectID, error) {
	result, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to insert document: %v", err)
	}
	id, _ := result.InsertedID.(primitive.ObjectID)
	return id, nil
}

// List returns one page of documents matching filter, newest first.
func (r *Repository[T]) List(ctx context.Context, filter bson.M, page, limit int) ([]T, Pagination, error) {
	return r.ListSorted(ctx, filter, page, limit, bson.D{{Key: "createdAt", Value: -1}})
}

// ListSorted is List with an explicit sort order.
func (r *Repository[T]) ListSorted(ctx context.Context, filter bson.M, page, limit int, sort bson.D) ([]T, Pagination, error) {
	if filter == nil {
		filter = bson.M{}
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("failed to count documents: %v", err)
	}

	opts := options.Find().
		SetSort(sort).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("failed to fetch documents: %v", err)
	}
	defer cursor.Close(ctx)

	docs := []T{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, Pagination{}, fmt.Errorf("failed to decode documents: %v", err)
	}

	return docs, NewPagination(total, page, limit), nil
}

func (r *Repository[T]) GetByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	var doc T
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch document: %v", err)
	}
	return &doc, nil
}

func (r *Repository[T]) FindOne(ctx context.Context, filter bson.M) (*T, error) {
	var doc T
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch document: %v", err)
	}
	return &doc, nil
}

// Update applies a $set patch to one document.
func (r *Repository[T]) Update(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update document: %v", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository[T]) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete document: %v", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
