package service

import (
	"context"
	"testing"

	"github.com/dribeiro/datahub/internal/model"
	"github.com/dribeiro/datahub/internal/store/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationServiceCreate(t *testing.T) {
	svc := NewNotificationService(memory.NewNotificationRepository())
	ctx := context.Background()

	notification, err := svc.Create(ctx, &model.CreateNotificationRequest{
		Type:         "SUCCESS",
		ExtractionID: "e1",
		SourceName:   "Salesforce",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, notification.ID)
	assert.Equal(t, model.NotificationSuccess, notification.Type)
	assert.Equal(t, "e1", notification.ExtractionID)
	assert.False(t, notification.Read)
	assert.False(t, notification.Timestamp.IsZero())
}

func TestNotificationServiceCreateInvalid(t *testing.T) {
	svc := NewNotificationService(memory.NewNotificationRepository())

	_, err := svc.Create(context.Background(), &model.CreateNotificationRequest{
		Type:         "warning",
		ExtractionID: "e1",
		SourceName:   "Salesforce",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNotificationServiceLifecycle(t *testing.T) {
	svc := NewNotificationService(memory.NewNotificationRepository())
	ctx := context.Background()

	for _, typ := range []model.NotificationType{model.NotificationStart, model.NotificationSuccess} {
		_, err := svc.Create(ctx, &model.CreateNotificationRequest{
			Type:         typ,
			ExtractionID: "e1",
			SourceName:   "Salesforce",
		})
		require.NoError(t, err)
	}

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	require.NoError(t, svc.MarkRead(ctx, list[0].ID))
	require.NoError(t, svc.MarkAllRead(ctx))

	list, err = svc.List(ctx)
	require.NoError(t, err)
	for _, n := range list {
		assert.True(t, n.Read)
	}

	require.NoError(t, svc.ClearAll(ctx))
	list, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
