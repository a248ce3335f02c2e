// Package pipeline defines the hiring state machine for applicants.
//
// Valid status graph:
//
//	NEW ──► SCREENING ──► INTERVIEW ──► OFFER_SENT ──► HIRED
//	 │          │              │             │
//	 └──────────┴──────────────┴─────────────┴──► REJECTED
//
// HIRED and REJECTED are terminal states.
package pipeline

import "fmt"

// Status values mirror the applicants.status column.
type Status string

const (
	StatusNew       Status = "NEW"
	StatusScreening Status = "SCREENING"
	StatusInterview Status = "INTERVIEW"
	StatusOfferSent Status = "OFFER_SENT"
	StatusHired     Status = "HIRED"
	StatusRejected  Status = "REJECTED"
)

// validTransitions lists every allowed (from → to) pair.
var validTransitions = map[Status][]Status{
	StatusNew:       {StatusScreening, StatusRejected},
	StatusScreening: {StatusInterview, StatusRejected},
	StatusInterview: {StatusOfferSent, StatusRejected},
	StatusOfferSent: {StatusHired, StatusRejected},
	// HIRED and REJECTED are terminal — no outgoing transitions
}

// ParseStatus converts a raw string to a Status, returning an error for
// unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusNew, StatusScreening, StatusInterview, StatusOfferSent, StatusHired, StatusRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown applicant status %q", s)
}

// IsTransitionAllowed returns true when moving from → to is permitted by the
// state machine.
func IsTransitionAllowed(from, to Status) bool {
	allowed, ok := validTransitions[from]
	if !ok {
		return false // terminal state — no outgoing transitions
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a status has no outgoing transitions.
func IsTerminal(s Status) bool {
	_, ok := validTransitions[s]
	return !ok
}
