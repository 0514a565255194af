package model

import (
	"fmt"
	"strings"
	"time"
)

// NotificationType classifies an extraction lifecycle event.
type NotificationType string

const (
	NotificationStart   NotificationType = "start"
	NotificationSuccess NotificationType = "success"
	NotificationError   NotificationType = "error"
)

// Notification is one entry in the append-only event log. Only the Read flag
// is ever mutated; removal happens solely through a bulk clear.
type Notification struct {
	ID           string           `json:"id" bson:"_id"`
	Type         NotificationType `json:"type" bson:"type"`
	ExtractionID string           `json:"extractionId" bson:"extraction_id"`
	SourceName   string           `json:"sourceName" bson:"source_name"`
	Timestamp    time.Time        `json:"timestamp" bson:"timestamp"`
	Read         bool             `json:"read" bson:"read"`
}

// CreateNotificationRequest is the body of POST /notifications.
type CreateNotificationRequest struct {
	Type         NotificationType `json:"type"`
	ExtractionID string           `json:"extractionId"`
	SourceName   string           `json:"sourceName"`
}

// Validate validates the creation request
func (r *CreateNotificationRequest) Validate() error {
	switch NotificationType(strings.ToLower(string(r.Type))) {
	case NotificationStart, NotificationSuccess, NotificationError:
	default:
		return fmt.Errorf("invalid notification type: %s (must be 'start', 'success' or 'error')", r.Type)
	}
	if r.ExtractionID == "" {
		return fmt.Errorf("extractionId is required")
	}
	if r.SourceName == "" {
		return fmt.Errorf("sourceName is required")
	}
	r.Type = NotificationType(strings.ToLower(string(r.Type)))
	return nil
}
