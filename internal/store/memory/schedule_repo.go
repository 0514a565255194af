package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/dribeiro/datahub/internal/model"
	"github.com/dribeiro/datahub/internal/store"
)

// ScheduleRepository is the in-memory schedule store.
type ScheduleRepository struct {
	mu        sync.RWMutex
	schedules map[string]*model.Schedule
}

// NewScheduleRepository creates a new in-memory schedule repository
func NewScheduleRepository() *ScheduleRepository {
	return &ScheduleRepository{
		schedules: make(map[string]*model.Schedule),
	}
}

// put seeds a schedule; used at startup.
func (r *ScheduleRepository) put(schedule model.Schedule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schedules[schedule.ID] = &schedule
}

// List returns all schedules ordered by id
func (r *ScheduleRepository) List(ctx context.Context) ([]model.Schedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make([]model.Schedule, 0, len(r.schedules))
	for _, schedule := range r.schedules {
		results = append(results, cloneSchedule(schedule))
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].ID < results[j].ID
	})

	return results, nil
}

// GetByID retrieves a schedule by id
func (r *ScheduleRepository) GetByID(ctx context.Context, id string) (*model.Schedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	schedule, ok := r.schedules[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	clone := cloneSchedule(schedule)
	return &clone, nil
}

// ReplacePreferences swaps the whole preference array for a schedule
func (r *ScheduleRepository) ReplacePreferences(ctx context.Context, id string, prefs []model.SchedulePreference) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	schedule, ok := r.schedules[id]
	if !ok {
		return store.ErrNotFound
	}
	schedule.SchedulePreferences = append([]model.SchedulePreference(nil), prefs...)
	return nil
}

func cloneSchedule(s *model.Schedule) model.Schedule {
	clone := *s
	clone.SchedulePreferences = append([]model.SchedulePreference(nil), s.SchedulePreferences...)
	return clone
}
