package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateNotificationRequestValidate(t *testing.T) {
	t.Run("valid types", func(t *testing.T) {
		for _, typ := range []NotificationType{NotificationStart, NotificationSuccess, NotificationError} {
			req := CreateNotificationRequest{Type: typ, ExtractionID: "e1", SourceName: "Salesforce"}
			assert.NoError(t, req.Validate())
		}
	})

	t.Run("type is case-normalized", func(t *testing.T) {
		req := CreateNotificationRequest{Type: "SUCCESS", ExtractionID: "e1", SourceName: "Salesforce"}
		assert.NoError(t, req.Validate())
		assert.Equal(t, NotificationSuccess, req.Type)
	})

	t.Run("invalid type", func(t *testing.T) {
		req := CreateNotificationRequest{Type: "warning", ExtractionID: "e1", SourceName: "Salesforce"}
		assert.ErrorContains(t, req.Validate(), "invalid notification type")
	})

	t.Run("missing extraction id", func(t *testing.T) {
		req := CreateNotificationRequest{Type: "start", SourceName: "Salesforce"}
		assert.ErrorContains(t, req.Validate(), "extractionId is required")
	})

	t.Run("missing source name", func(t *testing.T) {
		req := CreateNotificationRequest{Type: "start", ExtractionID: "e1"}
		assert.ErrorContains(t, req.Validate(), "sourceName is required")
	})
}
