package commerce

import "time"

// ---------------------------------------------------------------------------
// Run Result Types
// ---------------------------------------------------------------------------

// SyncError describes a single record that failed during a sync run. The
// record's human-readable name/ID is carried so operators can diagnose it.
type SyncError struct {
	RecordID string `json:"recordId"`
	Name     string `json:"name,omitempty"`
	Message  string `json:"message"`
}

// SyncResult summarizes one sync orchestrator run. A populated Errors slice
// with Processed > 0 indicates partial failure; per-record errors never abort
// a run.
type SyncResult struct {
	Processed   int         `json:"processed"`
	Created     int         `json:"created"`
	Updated     int         `json:"updated"`
	Pages       int         `json:"pages"`
	Errors      []SyncError `json:"errors"`
	StartedAt   time.Time   `json:"startedAt"`
	CompletedAt time.Time   `json:"completedAt"`
}

// NewSyncResult creates an empty result stamped with the start time.
func NewSyncResult() *SyncResult {
	return &SyncResult{
		Errors:    make([]SyncError, 0),
		StartedAt: time.Now(),
	}
}

// AddError records a per-record failure and keeps the run going.
func (r *SyncResult) AddError(recordID, name string, err error) {
	r.Errors = append(r.Errors, SyncError{
		RecordID: recordID,
		Name:     name,
		Message:  err.Error(),
	})
}

// Finish stamps the completion time and returns the result for chaining.
func (r *SyncResult) Finish() *SyncResult {
	r.CompletedAt = time.Now()
	return r
}

// HasErrors reports whether any per-record failures were recorded.
func (r *SyncResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// MatchError describes a single return that failed during a matching pass.
type MatchError struct {
	SwapReturnID string `json:"swapReturnId"`
	Message      string `json:"message"`
}

// MatchResult summarizes one matching engine pass over unmatched returns.
type MatchResult struct {
	TotalProcessed    int          `json:"totalProcessed"`
	SuccessfulMatches int          `json:"successfulMatches"`
	NotFound          int          `json:"notFound"`
	AlreadyMatched    int          `json:"alreadyMatched"`
	Skipped           int          `json:"skipped"`
	DryRun            bool         `json:"dryRun"`
	Errors            []MatchError `json:"errors"`
	StartedAt         time.Time    `json:"startedAt"`
	CompletedAt       time.Time    `json:"completedAt"`
}

// NewMatchResult creates an empty result stamped with the start time.
func NewMatchResult(dryRun bool) *MatchResult {
	return &MatchResult{
		DryRun:    dryRun,
		Errors:    make([]MatchError, 0),
		StartedAt: time.Now(),
	}
}

// AddError records a per-return failure and keeps the pass going.
func (r *MatchResult) AddError(swapReturnID string, err error) {
	r.Errors = append(r.Errors, MatchError{
		SwapReturnID: swapReturnID,
		Message:      err.Error(),
	})
}

// Finish stamps the completion time and returns the result for chaining.
func (r *MatchResult) Finish() *MatchResult {
	r.CompletedAt = time.Now()
	return r
}
