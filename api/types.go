package api

import "time"

// Verdict is the outcome of an admission check on a filter spec.
type Verdict string

const (
	VerdictAllow Verdict = "allow"
	VerdictDeny  Verdict = "deny"
)

// Decision is what a composite filter decided for one particle.
type Decision string

const (
	DecisionKeep   Decision = "keep"
	DecisionReject Decision = "reject"
)

// DecisionOf maps a Keep result to a Decision.
func DecisionOf(keep bool) Decision {
	if keep {
		return DecisionKeep
	}
	return DecisionReject
}

// RunRecord summarizes a single selection pass.
type RunRecord struct {
	ID        string        `json:"id"`
	Timestamp time.Time     `json:"timestamp"`
	Source    string        `json:"source"`
	Config    string        `json:"config,omitempty"`
	Chain     string        `json:"chain"`
	Total     int           `json:"total"`
	Kept      int           `json:"kept"`
	Rejected  int           `json:"rejected"`
	Workers   int           `json:"workers,omitempty"`
	Duration  time.Duration `json:"duration,omitempty"`
}

// CheckResponse is the result of the `check` command.
type CheckResponse struct {
	Decision Decision `json:"decision"`
	// RejectedBy names the first filter that returned false, if any.
	RejectedBy string `json:"rejected_by,omitempty"`
	// Index is the chain position of RejectedBy, -1 when kept.
	Index  int     `json:"index"`
	Energy float64 `json:"energy"`
}
