package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/dribeiro/datahub/internal/model"
	"github.com/dribeiro/datahub/internal/store"
)

// NotificationRepository is the in-memory notification store.
type NotificationRepository struct {
	mu            sync.RWMutex
	notifications []model.Notification
}

// NewNotificationRepository creates a new in-memory notification repository
func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{
		notifications: make([]model.Notification, 0),
	}
}

// Create appends a new notification. Duplicates for the same extraction and
// type are allowed.
func (r *NotificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.notifications = append(r.notifications, *notification)
	return nil
}

// List returns all notifications most-recent-first by Timestamp
func (r *NotificationRepository) List(ctx context.Context) ([]model.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := append([]model.Notification(nil), r.notifications...)

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Timestamp.After(results[j].Timestamp)
	})

	return results, nil
}

// MarkRead flips the read flag of one notification
func (r *NotificationRepository) MarkRead(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.notifications {
		if r.notifications[i].ID == id {
			r.notifications[i].Read = true
			return nil
		}
	}
	return store.ErrNotFound
}

// MarkAllRead flips every notification to read; no-op on an empty store
func (r *NotificationRepository) MarkAllRead(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.notifications {
		r.notifications[i].Read = true
	}
	return nil
}

// ClearAll empties the store unconditionally
func (r *NotificationRepository) ClearAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.notifications = r.notifications[:0]
	return nil
}
