package memory

import (
	"context"

	"github.com/dribeiro/datahub/internal/store"
)

// Store bundles the in-memory repositories behind the store interfaces.
type Store struct {
	Extractions   *ExtractionRepository
	Schedules     *ScheduleRepository
	Notifications *NotificationRepository
	Reference     *ReferenceRepository
}

// NewStore creates an in-memory store seeded with the demo reference data.
func NewStore() *Store {
	s := &Store{
		Extractions:   NewExtractionRepository(),
		Schedules:     NewScheduleRepository(),
		Notifications: NewNotificationRepository(),
		Reference:     NewReferenceRepository(),
	}
	s.seed()
	return s
}

func (s *Store) seed() {
	ctx := context.Background()

	for _, source := range store.SeedSources() {
		s.Reference.CreateSource(ctx, &source)
	}
	for _, template := range store.SeedTemplates() {
		s.Reference.CreateTemplate(ctx, &template)
	}
	for _, destination := range store.SeedDestinations() {
		s.Reference.putDestination(destination)
	}
	for _, schedule := range store.SeedSchedules() {
		s.Schedules.put(schedule)
	}
}
