package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dribeiro/datahub/internal/model"
	"github.com/dribeiro/datahub/internal/registry"
	"github.com/dribeiro/datahub/internal/store"
	"github.com/dribeiro/datahub/internal/worker"
	"github.com/google/uuid"
)

// ErrUnknownSource is returned when a creation request references a source id
// that does not resolve.
var ErrUnknownSource = errors.New("unknown source")

// ExtractionService creates extractions, kicks off their simulation and
// serves status reads.
type ExtractionService struct {
	extractions store.ExtractionRepository
	reference   store.ReferenceRepository
	steps       registry.StepRegistry
	pool        *worker.Pool
}

// NewExtractionService creates a new extraction service
func NewExtractionService(
	extractions store.ExtractionRepository,
	reference store.ReferenceRepository,
	steps registry.StepRegistry,
	pool *worker.Pool,
) *ExtractionService {
	return &ExtractionService{
		extractions: extractions,
		reference:   reference,
		steps:       steps,
		pool:        pool,
	}
}

// Create validates the request, persists a running extraction at step 1 and
// queues the background simulation. The returned record precedes simulation
// completion.
func (s *ExtractionService) Create(ctx context.Context, req *model.CreateExtractionRequest) (*model.Extraction, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	source, err := s.reference.GetSource(ctx, req.SourceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSource, req.SourceID)
		}
		return nil, fmt.Errorf("failed to resolve source: %w", err)
	}

	extraction := &model.Extraction{
		ID:          uuid.New().String(),
		Source:      model.SourceRef{ID: source.ID, Name: source.Name},
		Status:      model.StatusRunning,
		StartedAt:   time.Now().UTC(),
		CurrentStep: model.StepFetch,
		Template:    req.Template,
		Destination: req.Destination,
		Interval:    req.Interval,
	}

	if err := s.extractions.Create(ctx, extraction); err != nil {
		return nil, fmt.Errorf("failed to create extraction: %w", err)
	}

	if err := s.pool.Submit(worker.Job{ExtractionID: extraction.ID, SourceName: source.Name}); err != nil {
		return nil, fmt.Errorf("failed to queue extraction run: %w", err)
	}

	return extraction, nil
}

// List returns all extractions most-recent-first
func (s *ExtractionService) List(ctx context.Context) ([]model.Extraction, error) {
	return s.extractions.List(ctx)
}

// Status returns the persisted record plus the transient step status, which
// is nil unless the extraction is mid-simulation right now.
func (s *ExtractionService) Status(ctx context.Context, id string) (*model.ExtractionWithStatus, error) {
	extraction, err := s.extractions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result := &model.ExtractionWithStatus{Extraction: *extraction}
	if status, ok := s.steps.Get(id); ok {
		result.StepStatus = &status
	}
	return result, nil
}
