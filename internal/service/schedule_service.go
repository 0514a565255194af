package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dribeiro/datahub/internal/model"
	"github.com/dribeiro/datahub/internal/scheduler"
	"github.com/dribeiro/datahub/internal/store"
)

// ErrValidation marks request errors that map to a 400 at the boundary.
var ErrValidation = errors.New("validation error")

// ScheduleService manages weekly recurrence configurations.
type ScheduleService struct {
	schedules store.ScheduleRepository
	planner   *scheduler.Planner
}

// NewScheduleService creates a new schedule service
func NewScheduleService(schedules store.ScheduleRepository, planner *scheduler.Planner) *ScheduleService {
	return &ScheduleService{
		schedules: schedules,
		planner:   planner,
	}
}

// List returns all schedules augmented with their computed next firing time
func (s *ScheduleService) List(ctx context.Context) ([]model.ScheduleWithNextRun, error) {
	schedules, err := s.schedules.List(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	results := make([]model.ScheduleWithNextRun, len(schedules))
	for i, schedule := range schedules {
		results[i] = model.ScheduleWithNextRun{Schedule: schedule}
		if next, ok := s.planner.NextRun(schedule, now); ok {
			results[i].NextRun = &next
		}
	}
	return results, nil
}

// UpdatePreferences replaces the whole preference array for a schedule and
// returns the full updated schedule set. Unknown ids surface as not-found
// rather than silently succeeding.
func (s *ScheduleService) UpdatePreferences(ctx context.Context, req *model.UpdateSchedulePreferencesRequest) ([]model.ScheduleWithNextRun, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if err := s.schedules.ReplacePreferences(ctx, req.ScheduleID, req.UpdatedSchedulePreferences); err != nil {
		return nil, err
	}

	return s.List(ctx)
}
