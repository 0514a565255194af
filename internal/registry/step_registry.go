// Package registry holds the transient in-flight step status of running
// extractions. An id is present here if and only if its simulation is
// actively progressing; clients disambiguate "not started" from "finished"
// through the persisted extraction status.
package registry

import (
	"sync"

	"github.com/dribeiro/datahub/internal/model"
)

// StepRegistry is the read/write contract for transient step status. Kept as
// an interface so a push mechanism could replace the polled in-memory map
// without touching the persisted-record contract.
type StepRegistry interface {
	Set(extractionID string, status model.StepStatus)
	Get(extractionID string) (model.StepStatus, bool)
	Delete(extractionID string)
}

// MemoryStepRegistry is an in-memory step registry
type MemoryStepRegistry struct {
	mu    sync.RWMutex
	steps map[string]model.StepStatus
}

// NewMemoryStepRegistry creates a new in-memory step registry
func NewMemoryStepRegistry() *MemoryStepRegistry {
	return &MemoryStepRegistry{
		steps: make(map[string]model.StepStatus),
	}
}

// Set stores the current step status for an extraction
func (r *MemoryStepRegistry) Set(extractionID string, status model.StepStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps[extractionID] = status
}

// Get retrieves the current step status for an extraction
func (r *MemoryStepRegistry) Get(extractionID string) (model.StepStatus, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	status, exists := r.steps[extractionID]
	return status, exists
}

// Delete removes an extraction from the registry
func (r *MemoryStepRegistry) Delete(extractionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.steps, extractionID)
}
