// Package advisory builds rescheduling requests for a generative text
// provider and parses its replies into structured suggestions. Output
// is advisory only and must be treated as non-authoritative; it is
// never flight-safety-reviewed.
package advisory

import (
	"fmt"
	"time"
)

// Conditions is the expected-weather block inside a suggestion
type Conditions struct {
	Visibility  string `json:"visibility"`
	Winds       string `json:"winds"`
	Sky         string `json:"sky"`
	Temperature string `json:"temperature,omitempty"`
}

// Suggestion is one provider-proposed reschedule candidate. Elements
// are passed through as parsed; schema mismatches surface later as
// missing fields.
type Suggestion struct {
	ProposedAt string     `json:"proposed_at"`
	Reasoning  string     `json:"reasoning"`
	Conditions Conditions `json:"conditions"`
	Tradeoffs  string     `json:"tradeoffs,omitempty"`
	Benefits   string     `json:"benefits,omitempty"`
}

// ConflictDescriptor describes the conflicted lesson the provider is
// asked to work around
type ConflictDescriptor struct {
	OriginalTime time.Time `json:"original_time"`
	Reason       string    `json:"reason"`
	Notes        string    `json:"notes,omitempty"`
}

// excerptLimit caps how much of a malformed reply a ParseError carries
const excerptLimit = 200

// ParseError indicates the provider's reply could not be interpreted as
// the expected structured format. Always carries a truncated excerpt of
// the offending text; never silently recovered.
type ParseError struct {
	Excerpt string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse advisory reply: %v (excerpt: %q)", e.Err, e.Excerpt)
}

// Unwrap returns the underlying error
func (e *ParseError) Unwrap() error {
	return e.Err
}

// excerpt truncates raw reply text for error reporting
func excerpt(s string) string {
	if len(s) <= excerptLimit {
		return s
	}
	return s[:excerptLimit]
}
