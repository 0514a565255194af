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

// ReferenceRepository is the MongoDB-backed store for sources, templates and
// destinations
type ReferenceRepository struct {
	sources      *mongo.Collection
	templates    *mongo.Collection
	destinations *mongo.Collection
}

// NewReferenceRepository creates a new reference repository
func NewReferenceRepository(db *MongoDB) *ReferenceRepository {
	return &ReferenceRepository{
		sources:      db.GetCollection(CollectionSources),
		templates:    db.GetCollection(CollectionTemplates),
		destinations: db.GetCollection(CollectionDestinations),
	}
}

// ListSources returns all sources ordered by id
func (r *ReferenceRepository) ListSources(ctx context.Context) ([]model.Source, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.sources.Find(ctxTimeout, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list sources: %w", err)
	}
	defer cursor.Close(ctxTimeout)

	sources := make([]model.Source, 0)
	if err := cursor.All(ctxTimeout, &sources); err != nil {
		return nil, fmt.Errorf("failed to decode sources: %w", err)
	}
	return sources, nil
}

// GetSource retrieves a source by id
func (r *ReferenceRepository) GetSource(ctx context.Context, id string) (*model.Source, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var source model.Source
	err := r.sources.FindOne(ctxTimeout, bson.M{"_id": id}).Decode(&source)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get source: %w", err)
	}
	return &source, nil
}

// CreateSource inserts a new source
func (r *ReferenceRepository) CreateSource(ctx context.Context, source *model.Source) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.sources.InsertOne(ctxTimeout, source); err != nil {
		return fmt.Errorf("failed to create source: %w", err)
	}
	return nil
}

// DeleteSource removes a source and its templates
func (r *ReferenceRepository) DeleteSource(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.sources.DeleteOne(ctxTimeout, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete source: %w", err)
	}
	if result.DeletedCount == 0 {
		return store.ErrNotFound
	}

	if _, err := r.templates.DeleteMany(ctxTimeout, bson.M{"source_id": id}); err != nil {
		return fmt.Errorf("failed to delete source templates: %w", err)
	}
	return nil
}

// ListTemplates filters templates by source id; an empty source id yields an
// empty list
func (r *ReferenceRepository) ListTemplates(ctx context.Context, sourceID string) ([]model.Template, error) {
	templates := make([]model.Template, 0)
	if sourceID == "" {
		return templates, nil
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.templates.Find(ctxTimeout, bson.M{"source_id": sourceID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer cursor.Close(ctxTimeout)

	if err := cursor.All(ctxTimeout, &templates); err != nil {
		return nil, fmt.Errorf("failed to decode templates: %w", err)
	}
	return templates, nil
}

// CreateTemplate inserts a new template after checking its source exists
func (r *ReferenceRepository) CreateTemplate(ctx context.Context, template *model.Template) error {
	if _, err := r.GetSource(ctx, template.SourceID); err != nil {
		return err
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.templates.InsertOne(ctxTimeout, template); err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}
	return nil
}

// DeleteTemplate removes a template
func (r *ReferenceRepository) DeleteTemplate(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.templates.DeleteOne(ctxTimeout, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	if result.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ListDestinations returns all destinations ordered by id
func (r *ReferenceRepository) ListDestinations(ctx context.Context) ([]model.Destination, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.destinations.Find(ctxTimeout, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list destinations: %w", err)
	}
	defer cursor.Close(ctxTimeout)

	destinations := make([]model.Destination, 0)
	if err := cursor.All(ctxTimeout, &destinations); err != nil {
		return nil, fmt.Errorf("failed to decode destinations: %w", err)
	}
	return destinations, nil
}

// SeedDestination inserts a destination if it does not already exist
func (r *ReferenceRepository) SeedDestination(ctx context.Context, destination model.Destination) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Update().SetUpsert(true)
	update := bson.M{"$setOnInsert": destination}
	if _, err := r.destinations.UpdateOne(ctxTimeout, bson.M{"_id": destination.ID}, update, opts); err != nil {
		return fmt.Errorf("failed to seed destination: %w", err)
	}
	return nil
}

// SeedSource inserts a source if it does not already exist
func (r *ReferenceRepository) SeedSource(ctx context.Context, source model.Source) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Update().SetUpsert(true)
	update := bson.M{"$setOnInsert": source}
	if _, err := r.sources.UpdateOne(ctxTimeout, bson.M{"_id": source.ID}, update, opts); err != nil {
		return fmt.Errorf("failed to seed source: %w", err)
	}
	return nil
}

// SeedTemplate inserts a template if it does not already exist
func (r *ReferenceRepository) SeedTemplate(ctx context.Context, template model.Template) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Update().SetUpsert(true)
	update := bson.M{"$setOnInsert": template}
	if _, err := r.templates.UpdateOne(ctxTimeout, bson.M{"_id": template.ID}, update, opts); err != nil {
		return fmt.Errorf("failed to seed template: %w", err)
	}
	return nil
}
