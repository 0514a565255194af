package memory

import (
	"context"
	"testing"
	"time"

	"github.com/dribeiro/datahub/internal/model"
	"github.com/dribeiro/datahub/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExtraction(id string, startedAt time.Time) *model.Extraction {
	return &model.Extraction{
		ID:          id,
		Source:      model.SourceRef{ID: "1", Name: "Salesforce"},
		Status:      model.StatusRunning,
		StartedAt:   startedAt,
		CurrentStep: model.StepFetch,
	}
}

func TestExtractionRepositoryCreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewExtractionRepository()

	extraction := newExtraction("e1", time.Now().UTC())
	require.NoError(t, repo.Create(ctx, extraction))

	got, err := repo.GetByID(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "e1", got.ID)
	assert.Equal(t, model.StatusRunning, got.Status)

	// Reads are isolated from subsequent writes
	got.Status = model.StatusFailed
	again, err := repo.GetByID(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusRunning, again.Status)
}

func TestExtractionRepositoryGetNotFound(t *testing.T) {
	repo := NewExtractionRepository()
	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestExtractionRepositoryListOrdering(t *testing.T) {
	ctx := context.Background()
	repo := NewExtractionRepository()

	base := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, newExtraction("old", base)))
	require.NoError(t, repo.Create(ctx, newExtraction("new", base.Add(time.Minute))))
	// Same StartedAt as "old": insertion order breaks the tie, newest first
	require.NoError(t, repo.Create(ctx, newExtraction("tied", base)))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "new", list[0].ID)
	assert.Equal(t, "tied", list[1].ID)
	assert.Equal(t, "old", list[2].ID)
}

func TestExtractionRepositoryListEmpty(t *testing.T) {
	list, err := NewExtractionRepository().List(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, list)
}

func TestExtractionRepositoryUpdateStep(t *testing.T) {
	ctx := context.Background()
	repo := NewExtractionRepository()
	require.NoError(t, repo.Create(ctx, newExtraction("e1", time.Now().UTC())))

	require.NoError(t, repo.UpdateStep(ctx, "e1", model.StepBuild))

	got, err := repo.GetByID(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, model.StepBuild, got.CurrentStep)

	assert.ErrorIs(t, repo.UpdateStep(ctx, "missing", model.StepClean), store.ErrNotFound)
}

func TestExtractionRepositoryComplete(t *testing.T) {
	ctx := context.Background()
	repo := NewExtractionRepository()
	require.NoError(t, repo.Create(ctx, newExtraction("e1", time.Now().UTC())))

	completedAt := time.Now().UTC()
	require.NoError(t, repo.Complete(ctx, "e1", completedAt, 1234, "salesforce_export_20260828.csv"))

	got, err := repo.GetByID(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, got.Status)
	require.NotNil(t, got.CompletedAt)
	assert.True(t, got.CompletedAt.Equal(completedAt))
	assert.Equal(t, 1234, got.RecordsCount)
	assert.Equal(t, "salesforce_export_20260828.csv", got.FileName)
	assert.Equal(t, model.StepCount, got.CurrentStep)
	assert.Empty(t, got.Error)

	assert.ErrorIs(t, repo.Complete(ctx, "missing", completedAt, 1, "x.csv"), store.ErrNotFound)
}

func TestExtractionRepositoryFail(t *testing.T) {
	ctx := context.Background()
	repo := NewExtractionRepository()
	require.NoError(t, repo.Create(ctx, newExtraction("e1", time.Now().UTC())))

	failedAt := time.Now().UTC()
	require.NoError(t, repo.Fail(ctx, "e1", failedAt, "source timed out"))

	got, err := repo.GetByID(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusFailed, got.Status)
	require.NotNil(t, got.CompletedAt)
	assert.Equal(t, "source timed out", got.Error)
	assert.Zero(t, got.RecordsCount)
	assert.Empty(t, got.FileName)

	assert.ErrorIs(t, repo.Fail(ctx, "missing", failedAt, "x"), store.ErrNotFound)
}
