package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/dribeiro/datahub/internal/model"
	"github.com/dribeiro/datahub/internal/registry"
	"github.com/dribeiro/datahub/internal/store"
)

// StageDelays holds the artificial wait per pipeline stage plus the settle
// pause between stages. Tests inject near-zero values.
type StageDelays struct {
	Fetch   time.Duration
	Clean   time.Duration
	Build   time.Duration
	Deposit time.Duration
	Settle  time.Duration
}

// DefaultStageDelays returns the demo timing
func DefaultStageDelays() StageDelays {
	return StageDelays{
		Fetch:   1500 * time.Millisecond,
		Clean:   1000 * time.Millisecond,
		Build:   800 * time.Millisecond,
		Deposit: 1200 * time.Millisecond,
		Settle:  300 * time.Millisecond,
	}
}

func (d StageDelays) forStep(step int) time.Duration {
	switch step {
	case model.StepFetch:
		return d.Fetch
	case model.StepClean:
		return d.Clean
	case model.StepBuild:
		return d.Build
	case model.StepDeposit:
		return d.Deposit
	}
	return 0
}

var stageNames = map[int]string{
	model.StepFetch:   "fetching source records",
	model.StepClean:   "cleaning and deduplicating",
	model.StepBuild:   "building CSV file",
	model.StepDeposit: "depositing to destination",
}

// Simulator walks an extraction through the four fixed pipeline stages,
// mutating the persisted record and the transient step registry as it goes.
// It never runs twice for the same extraction id; the creation path is its
// only caller and always supplies a fresh id.
type Simulator struct {
	extractions store.ExtractionRepository
	steps       registry.StepRegistry
	delays      StageDelays
}

// NewSimulator creates a new extraction simulator
func NewSimulator(extractions store.ExtractionRepository, steps registry.StepRegistry, delays StageDelays) *Simulator {
	return &Simulator{
		extractions: extractions,
		steps:       steps,
		delays:      delays,
	}
}

// Run executes the full stage sequence for one extraction. It is
// fire-and-forget: errors and panics end up on the extraction record as a
// terminal failed state, never on a caller.
func (s *Simulator) Run(ctx context.Context, extractionID, sourceName string) {
	defer func() {
		if r := recover(); r != nil {
			msg := "unknown error"
			if err, ok := r.(error); ok {
				msg = err.Error()
			} else if str, ok := r.(string); ok {
				msg = str
			}
			s.fail(ctx, extractionID, msg)
		}
	}()

	slog.Info("Starting extraction simulation",
		"extraction_id", extractionID,
		"source_name", sourceName,
	)

	start := time.Now()

	for step := model.StepFetch; step <= model.StepDeposit; step++ {
		if err := s.runStage(ctx, extractionID, step); err != nil {
			s.fail(ctx, extractionID, err.Error())
			return
		}
	}

	completedAt := time.Now().UTC()
	recordsCount := 500 + rand.Intn(5001)
	fileName := BuildFileName(sourceName, completedAt)

	if err := s.extractions.Complete(ctx, extractionID, completedAt, recordsCount, fileName); err != nil {
		s.fail(ctx, extractionID, err.Error())
		return
	}
	s.steps.Delete(extractionID)

	slog.Info("Extraction simulation completed",
		"extraction_id", extractionID,
		"records_count", recordsCount,
		"file_name", fileName,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

// runStage advances one stage: persist the step, mark it processing, wait the
// stage delay, mark it processed, wait the settle delay.
func (s *Simulator) runStage(ctx context.Context, extractionID string, step int) error {
	slog.Debug("Extraction stage started",
		"extraction_id", extractionID,
		"step", step,
		"stage", stageNames[step],
	)

	if err := s.extractions.UpdateStep(ctx, extractionID, step); err != nil {
		return fmt.Errorf("failed to persist step %d: %w", step, err)
	}

	s.steps.Set(extractionID, model.StepStatus{Step: step, Status: model.StepProcessing})
	time.Sleep(s.delays.forStep(step))

	s.steps.Set(extractionID, model.StepStatus{Step: step, Status: model.StepProcessed})
	time.Sleep(s.delays.Settle)

	return nil
}

// fail records the terminal failed state and clears the registry entry.
func (s *Simulator) fail(ctx context.Context, extractionID, msg string) {
	slog.Error("Extraction simulation failed",
		"extraction_id", extractionID,
		"error", msg,
	)

	if err := s.extractions.Fail(ctx, extractionID, time.Now().UTC(), msg); err != nil {
		slog.Error("Failed to persist extraction failure",
			"extraction_id", extractionID,
			"error", err.Error(),
		)
	}
	s.steps.Delete(extractionID)
}

// BuildFileName derives the synthetic CSV name from the source display name
// and the completion date: <lowercased-source-name>_export_<YYYYMMDD>.csv
func BuildFileName(sourceName string, at time.Time) string {
	name := strings.ToLower(strings.ReplaceAll(sourceName, " ", "_"))
	return fmt.Sprintf("%s_export_%s.csv", name, at.Format("20060102"))
}
