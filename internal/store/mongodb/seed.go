package mongodb

import (
	"context"
	"fmt"

	"github.com/dribeiro/datahub/internal/store"
)

// Store bundles the MongoDB repositories behind the store interfaces.
type Store struct {
	DB            *MongoDB
	Extractions   *ExtractionRepository
	Schedules     *ScheduleRepository
	Notifications *NotificationRepository
	Reference     *ReferenceRepository
}

// NewStore creates a MongoDB store, ensures indexes and seeds the demo
// reference data on first run.
func NewStore(ctx context.Context, db *MongoDB) (*Store, error) {
	s := &Store{
		DB:            db,
		Extractions:   NewExtractionRepository(db),
		Schedules:     NewScheduleRepository(db),
		Notifications: NewNotificationRepository(db),
		Reference:     NewReferenceRepository(db),
	}

	if err := CreateIndexes(ctx, db); err != nil {
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}
	if err := s.seed(ctx); err != nil {
		return nil, fmt.Errorf("failed to seed reference data: %w", err)
	}
	return s, nil
}

func (s *Store) seed(ctx context.Context) error {
	for _, source := range store.SeedSources() {
		if err := s.Reference.SeedSource(ctx, source); err != nil {
			return err
		}
	}
	for _, template := range store.SeedTemplates() {
		if err := s.Reference.SeedTemplate(ctx, template); err != nil {
			return err
		}
	}
	for _, destination := range store.SeedDestinations() {
		if err := s.Reference.SeedDestination(ctx, destination); err != nil {
			return err
		}
	}
	for _, schedule := range store.SeedSchedules() {
		if err := s.Schedules.Seed(ctx, schedule); err != nil {
			return err
		}
	}
	return nil
}
