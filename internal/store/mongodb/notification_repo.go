package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/dribeiro/datahub/internal/model"
	"github.com/dribeiro/datahub/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NotificationRepository is the MongoDB-backed notification store
type NotificationRepository struct {
	collection *mongo.Collection
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *MongoDB) *NotificationRepository {
	return &NotificationRepository{
		collection: db.GetCollection(CollectionNotifications),
	}
}

// Create appends a new notification
func (r *NotificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.collection.InsertOne(ctxTimeout, notification); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// List returns all notifications most-recent-first by Timestamp
func (r *NotificationRepository) List(ctx context.Context) ([]model.Notification, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := r.collection.Find(ctxTimeout, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer cursor.Close(ctxTimeout)

	notifications := make([]model.Notification, 0)
	if err := cursor.All(ctxTimeout, &notifications); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %w", err)
	}
	return notifications, nil
}

// MarkRead flips the read flag of one notification
func (r *NotificationRepository) MarkRead(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"read": true}}
	result, err := r.collection.UpdateOne(ctxTimeout, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if result.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// MarkAllRead flips every notification to read
func (r *NotificationRepository) MarkAllRead(ctx context.Context) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"read": true}}
	if _, err := r.collection.UpdateMany(ctxTimeout, bson.M{}, update); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

// ClearAll empties the store unconditionally
func (r *NotificationRepository) ClearAll(ctx context.Context) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.collection.DeleteMany(ctxTimeout, bson.M{}); err != nil {
		return fmt.Errorf("failed to clear notifications: %w", err)
	}
	return nil
}
