package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dribeiro/datahub/internal/model"
	"github.com/dribeiro/datahub/internal/store"
	"github.com/google/uuid"
)

// NotificationService manages the extraction event log.
type NotificationService struct {
	notifications store.NotificationRepository
}

// NewNotificationService creates a new notification service
func NewNotificationService(notifications store.NotificationRepository) *NotificationService {
	return &NotificationService{
		notifications: notifications,
	}
}

// Create appends a new unread notification
func (s *NotificationService) Create(ctx context.Context, req *model.CreateNotificationRequest) (*model.Notification, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	notification := &model.Notification{
		ID:           uuid.New().String(),
		Type:         req.Type,
		ExtractionID: req.ExtractionID,
		SourceName:   req.SourceName,
		Timestamp:    time.Now().UTC(),
		Read:         false,
	}

	if err := s.notifications.Create(ctx, notification); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	return notification, nil
}

// List returns all notifications most-recent-first
func (s *NotificationService) List(ctx context.Context) ([]model.Notification, error) {
	return s.notifications.List(ctx)
}

// MarkRead flips one notification to read
func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	return s.notifications.MarkRead(ctx, id)
}

// MarkAllRead flips every notification to read
func (s *NotificationService) MarkAllRead(ctx context.Context) error {
	return s.notifications.MarkAllRead(ctx)
}

// ClearAll empties the notification store
func (s *NotificationService) ClearAll(ctx context.Context) error {
	return s.notifications.ClearAll(ctx)
}
