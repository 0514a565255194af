package model

import (
	"errors"
	"time"
)

// ExtractionStatus is the lifecycle state of an extraction run.
type ExtractionStatus string

const (
	StatusPending   ExtractionStatus = "pending"
	StatusRunning   ExtractionStatus = "running"
	StatusCompleted ExtractionStatus = "completed"
	StatusFailed    ExtractionStatus = "failed"
)

// Terminal reports whether the status can no longer change.
func (s ExtractionStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Pipeline stage numbers. Every extraction walks them in order.
const (
	StepFetch   = 1
	StepClean   = 2
	StepBuild   = 3
	StepDeposit = 4

	StepCount = 4
)

// SourceRef is the subset of a source embedded in an extraction record.
type SourceRef struct {
	ID   string `json:"id" bson:"id"`
	Name string `json:"name" bson:"name"`
}

// Extraction represents one simulated fetch→clean→build→deposit run.
// Once Status is terminal no field is mutated again.
type Extraction struct {
	ID           string           `json:"id" bson:"_id"`
	Source       SourceRef        `json:"source" bson:"source"`
	Status       ExtractionStatus `json:"status" bson:"status"`
	StartedAt    time.Time        `json:"startedAt" bson:"started_at"`
	CompletedAt  *time.Time       `json:"completedAt,omitempty" bson:"completed_at,omitempty"`
	CurrentStep  int              `json:"currentStep" bson:"current_step"`
	RecordsCount int              `json:"recordsCount,omitempty" bson:"records_count,omitempty"`
	FileName     string           `json:"fileName,omitempty" bson:"file_name,omitempty"`
	Error        string           `json:"error,omitempty" bson:"error,omitempty"`
	Template     string           `json:"template,omitempty" bson:"template,omitempty"`
	Destination  string           `json:"destination,omitempty" bson:"destination,omitempty"`
	Interval     string           `json:"interval,omitempty" bson:"interval,omitempty"`
}

// ExtractionWithStatus is the status-poll response: the persisted record plus
// the transient in-flight step marker, null once the run is terminal.
type ExtractionWithStatus struct {
	Extraction
	StepStatus *StepStatus `json:"stepStatus"`
}

// CreateExtractionRequest is the body of POST /extractions.
type CreateExtractionRequest struct {
	SourceID    string `json:"sourceId"`
	Template    string `json:"template"`
	Destination string `json:"destination"`
	Interval    string `json:"interval"`
}

// Validate validates the creation request
func (r *CreateExtractionRequest) Validate() error {
	if r.SourceID == "" {
		return errors.New("sourceId is required")
	}
	if r.Template == "" {
		return errors.New("template is required")
	}
	if r.Destination == "" {
		return errors.New("destination is required")
	}
	if r.Interval == "" {
		return errors.New("interval is required")
	}
	return nil
}

// StatusRequest is the body of PUT /extractions (status check).
type StatusRequest struct {
	ID string `json:"id"`
}

// Validate validates the status request
func (r *StatusRequest) Validate() error {
	if r.ID == "" {
		return errors.New("id is required")
	}
	return nil
}
