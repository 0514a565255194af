package worker

// Job is one queued extraction run. The record already exists in the
// extraction store in running state when the job is submitted.
type Job struct {
	ExtractionID string
	SourceName   string
}
