// Package store defines the repository contracts shared by the in-memory and
// MongoDB backends. Handlers and the simulator only ever see these
// interfaces, so the backing store can be swapped by configuration.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/dribeiro/datahub/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ExtractionRepository persists extraction records.
type ExtractionRepository interface {
	Create(ctx context.Context, extraction *model.Extraction) error
	GetByID(ctx context.Context, id string) (*model.Extraction, error)
	// List returns all extractions most-recent-first by StartedAt.
	List(ctx context.Context) ([]model.Extraction, error)
	// UpdateStep persists the current step of a running extraction.
	UpdateStep(ctx context.Context, id string, step int) error
	// Complete records the successful terminal transition.
	Complete(ctx context.Context, id string, completedAt time.Time, recordsCount int, fileName string) error
	// Fail records the failed terminal transition.
	Fail(ctx context.Context, id string, completedAt time.Time, errMsg string) error
}

// ScheduleRepository persists weekly recurrence configurations.
type ScheduleRepository interface {
	List(ctx context.Context) ([]model.Schedule, error)
	GetByID(ctx context.Context, id string) (*model.Schedule, error)
	// ReplacePreferences swaps the whole preference array for a schedule.
	ReplacePreferences(ctx context.Context, id string, prefs []model.SchedulePreference) error
}

// NotificationRepository persists the extraction event log.
type NotificationRepository interface {
	Create(ctx context.Context, notification *model.Notification) error
	// List returns all notifications most-recent-first by Timestamp.
	List(ctx context.Context) ([]model.Notification, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
	ClearAll(ctx context.Context) error
}

// ReferenceRepository persists sources, templates and destinations.
type ReferenceRepository interface {
	ListSources(ctx context.Context) ([]model.Source, error)
	GetSource(ctx context.Context, id string) (*model.Source, error)
	CreateSource(ctx context.Context, source *model.Source) error
	DeleteSource(ctx context.Context, id string) error

	// ListTemplates filters by source id; an empty source id yields an empty list.
	ListTemplates(ctx context.Context, sourceID string) ([]model.Template, error)
	CreateTemplate(ctx context.Context, template *model.Template) error
	DeleteTemplate(ctx context.Context, id string) error

	ListDestinations(ctx context.Context) ([]model.Destination, error)
}
