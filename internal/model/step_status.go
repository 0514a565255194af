package model

// StepState marks whether a stage is being worked on or has settled.
type StepState string

const (
	StepProcessing StepState = "processing"
	StepProcessed  StepState = "processed"
)

// StepStatus is the transient in-flight progress marker for an extraction.
// It lives only in the step registry while the simulation is running; the
// registry entry is removed on any terminal outcome.
type StepStatus struct {
	Step   int       `json:"step"`
	Status StepState `json:"status"`
}
