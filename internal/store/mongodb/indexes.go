package mongodb

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateIndexes creates the indexes backing the list orderings and lookups
func CreateIndexes(ctx context.Context, db *MongoDB) error {
	slog.Info("Creating MongoDB indexes")

	ctxTimeout, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	extractionIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "started_at", Value: -1}},
			Options: options.Index().SetName("idx_started_at"),
		},
		{
			Keys: bson.D{
				{Key: "status", Value: 1},
				{Key: "started_at", Value: -1},
			},
			Options: options.Index().SetName("idx_status_started_at"),
		},
	}
	if _, err := db.GetCollection(CollectionExtractions).Indexes().CreateMany(ctxTimeout, extractionIndexes); err != nil {
		return err
	}

	notificationIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("idx_timestamp"),
		},
		{
			Keys:    bson.D{{Key: "extraction_id", Value: 1}},
			Options: options.Index().SetName("idx_extraction_id"),
		},
	}
	if _, err := db.GetCollection(CollectionNotifications).Indexes().CreateMany(ctxTimeout, notificationIndexes); err != nil {
		return err
	}

	templateIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "source_id", Value: 1}},
			Options: options.Index().SetName("idx_source_id"),
		},
	}
	if _, err := db.GetCollection(CollectionTemplates).Indexes().CreateMany(ctxTimeout, templateIndexes); err != nil {
		return err
	}

	slog.Info("Successfully created MongoDB indexes")
	return nil
}
