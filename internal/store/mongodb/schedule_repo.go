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

// ScheduleRepository is the MongoDB-backed schedule store
type ScheduleRepository struct {
	collection *mongo.Collection
}

// NewScheduleRepository creates a new schedule repository
func NewScheduleRepository(db *MongoDB) *ScheduleRepository {
	return &ScheduleRepository{
		collection: db.GetCollection(CollectionSchedules),
	}
}

// List returns all schedules ordered by id
func (r *ScheduleRepository) List(ctx context.Context) ([]model.Schedule, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctxTimeout, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	defer cursor.Close(ctxTimeout)

	schedules := make([]model.Schedule, 0)
	if err := cursor.All(ctxTimeout, &schedules); err != nil {
		return nil, fmt.Errorf("failed to decode schedules: %w", err)
	}
	return schedules, nil
}

// GetByID retrieves a schedule by id
func (r *ScheduleRepository) GetByID(ctx context.Context, id string) (*model.Schedule, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var schedule model.Schedule
	err := r.collection.FindOne(ctxTimeout, bson.M{"_id": id}).Decode(&schedule)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}
	return &schedule, nil
}

// ReplacePreferences swaps the whole preference array for a schedule
func (r *ScheduleRepository) ReplacePreferences(ctx context.Context, id string, prefs []model.SchedulePreference) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"schedule_preferences": prefs}}
	result, err := r.collection.UpdateOne(ctxTimeout, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update schedule preferences: %w", err)
	}
	if result.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Seed inserts a schedule if it does not already exist
func (r *ScheduleRepository) Seed(ctx context.Context, schedule model.Schedule) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Update().SetUpsert(true)
	update := bson.M{"$setOnInsert": schedule}
	if _, err := r.collection.UpdateOne(ctxTimeout, bson.M{"_id": schedule.ID}, update, opts); err != nil {
		return fmt.Errorf("failed to seed schedule: %w", err)
	}
	return nil
}
