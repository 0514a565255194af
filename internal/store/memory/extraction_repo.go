package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dribeiro/datahub/internal/model"
	"github.com/dribeiro/datahub/internal/store"
)

// ExtractionRepository is the in-memory extraction store. Everything resets
// on process restart.
type ExtractionRepository struct {
	mu          sync.RWMutex
	extractions map[string]*model.Extraction
	seq         map[string]uint64 // insertion order, breaks StartedAt ties
	nextSeq     uint64
}

// NewExtractionRepository creates a new in-memory extraction repository
func NewExtractionRepository() *ExtractionRepository {
	return &ExtractionRepository{
		extractions: make(map[string]*model.Extraction),
		seq:         make(map[string]uint64),
	}
}

// Create inserts a new extraction record
func (r *ExtractionRepository) Create(ctx context.Context, extraction *model.Extraction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *extraction
	r.extractions[extraction.ID] = &clone
	r.seq[extraction.ID] = r.nextSeq
	r.nextSeq++
	return nil
}

// GetByID retrieves an extraction by id
func (r *ExtractionRepository) GetByID(ctx context.Context, id string) (*model.Extraction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	extraction, ok := r.extractions[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	clone := *extraction
	return &clone, nil
}

// List returns all extractions most-recent-first by StartedAt
func (r *ExtractionRepository) List(ctx context.Context) ([]model.Extraction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make([]model.Extraction, 0, len(r.extractions))
	for _, extraction := range r.extractions {
		results = append(results, *extraction)
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].StartedAt.Equal(results[j].StartedAt) {
			return r.seq[results[i].ID] > r.seq[results[j].ID]
		}
		return results[i].StartedAt.After(results[j].StartedAt)
	})

	return results, nil
}

// UpdateStep persists the current step of a running extraction
func (r *ExtractionRepository) UpdateStep(ctx context.Context, id string, step int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	extraction, ok := r.extractions[id]
	if !ok {
		return store.ErrNotFound
	}
	extraction.CurrentStep = step
	return nil
}

// Complete records the successful terminal transition
func (r *ExtractionRepository) Complete(ctx context.Context, id string, completedAt time.Time, recordsCount int, fileName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	extraction, ok := r.extractions[id]
	if !ok {
		return store.ErrNotFound
	}
	extraction.Status = model.StatusCompleted
	extraction.CompletedAt = &completedAt
	extraction.RecordsCount = recordsCount
	extraction.FileName = fileName
	extraction.CurrentStep = model.StepCount
	return nil
}

// Fail records the failed terminal transition
func (r *ExtractionRepository) Fail(ctx context.Context, id string, completedAt time.Time, errMsg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	extraction, ok := r.extractions[id]
	if !ok {
		return store.ErrNotFound
	}
	extraction.Status = model.StatusFailed
	extraction.CompletedAt = &completedAt
	extraction.Error = errMsg
	return nil
}
