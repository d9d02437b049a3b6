// Package types defines the shared data model for the faculty scraper.
package types

// ProfessorRecord is one extracted professor entry.
// Name must be non-empty; the parser rejects records that violate this.
type ProfessorRecord struct {
	Name  string `json:"name" validate:"required"`
	Title string `json:"title"`
	Notes string `json:"notes"`
}

// OutcomeStatus is the terminal state of one processed URL.
type OutcomeStatus string

const (
	// StatusSuccess means extraction and parsing succeeded (zero records is still success).
	StatusSuccess OutcomeStatus = "success"
	// StatusFetchFailed means every fetch attempt failed; no extraction was attempted.
	StatusFetchFailed OutcomeStatus = "fetch_failed"
	// StatusParseFailed means the model output could not be parsed after all attempts.
	StatusParseFailed OutcomeStatus = "parse_failed"
)

// URLOutcome is the immutable terminal result for one source URL.
// RawResponse is populated only for StatusParseFailed, carrying the last
// model response for manual recovery.
type URLOutcome struct {
	URL         string
	Status      OutcomeStatus
	Records     []ProfessorRecord
	RawResponse string
}

// Failed reports whether the outcome is a failure state.
func (o URLOutcome) Failed() bool {
	return o.Status != StatusSuccess
}
