package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dribeiro/datahub/internal/model"
	"github.com/dribeiro/datahub/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ExtractionRepository is the MongoDB-backed extraction store
type ExtractionRepository struct {
	collection *mongo.Collection
}

// NewExtractionRepository creates a new extraction repository
func NewExtractionRepository(db *MongoDB) *ExtractionRepository {
	return &ExtractionRepository{
		collection: db.GetCollection(CollectionExtractions),
	}
}

// Create inserts a new extraction record
func (r *ExtractionRepository) Create(ctx context.Context, extraction *model.Extraction) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.collection.InsertOne(ctxTimeout, extraction); err != nil {
		return fmt.Errorf("failed to create extraction: %w", err)
	}
	return nil
}

// GetByID retrieves an extraction by id
func (r *ExtractionRepository) GetByID(ctx context.Context, id string) (*model.Extraction, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var extraction model.Extraction
	err := r.collection.FindOne(ctxTimeout, bson.M{"_id": id}).Decode(&extraction)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get extraction: %w", err)
	}
	return &extraction, nil
}

// List returns all extractions most-recent-first by StartedAt
func (r *ExtractionRepository) List(ctx context.Context) ([]model.Extraction, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "started_at", Value: -1}})
	cursor, err := r.collection.Find(ctxTimeout, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list extractions: %w", err)
	}
	defer cursor.Close(ctxTimeout)

	extractions := make([]model.Extraction, 0)
	if err := cursor.All(ctxTimeout, &extractions); err != nil {
		return nil, fmt.Errorf("failed to decode extractions: %w", err)
	}
	return extractions, nil
}

// UpdateStep persists the current step of a running extraction
func (r *ExtractionRepository) UpdateStep(ctx context.Context, id string, step int) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"current_step": step}}
	result, err := r.collection.UpdateOne(ctxTimeout, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update extraction step: %w", err)
	}
	if result.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Complete records the successful terminal transition
func (r *ExtractionRepository) Complete(ctx context.Context, id string, completedAt time.Time, recordsCount int, fileName string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"status":        model.StatusCompleted,
		"completed_at":  completedAt,
		"records_count": recordsCount,
		"file_name":     fileName,
		"current_step":  model.StepCount,
	}}
	result, err := r.collection.UpdateOne(ctxTimeout, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to complete extraction: %w", err)
	}
	if result.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Fail records the failed terminal transition
func (r *ExtractionRepository) Fail(ctx context.Context, id string, completedAt time.Time, errMsg string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"status":       model.StatusFailed,
		"completed_at": completedAt,
		"error":        errMsg,
	}}
	result, err := r.collection.UpdateOne(ctxTimeout, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to record extraction failure: %w", err)
	}
	if result.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
