package models

import "fmt"

// Availability is the work arrangement of an offer.
type Availability string

const (
	AvailabilityRemote Availability = "remote"
	AvailabilityHybrid Availability = "hybrid"
	AvailabilityOnSite Availability = "on_site"
)

// ParseAvailability converts a raw string to an Availability, returning an
// error for unknown values.
func ParseAvailability(s string) (Availability, error) {
	a := Availability(s)
	switch a {
	case AvailabilityRemote, AvailabilityHybrid, AvailabilityOnSite:
		return a, nil
	}
	return "", fmt.Errorf("unknown availability %q", s)
}

type Recruiter struct {
	ID           int64  `json:"id" db:"id"`
	Name         string `json:"name" db:"name" validate:"required"`
	Email        string `json:"email" db:"email" validate:"required,email"`
	Company      string `json:"company" db:"company"`
	PasswordHash string `json:"password_hash,omitempty" db:"password_hash"`
	Created      int64  `json:"created" db:"created"`
}

type WorkOffer struct {
	ID           int64        `json:"id" db:"id"`
	RecruiterID  int64        `json:"recruiter_id" db:"recruiter_id"`
	Name         string       `json:"name" db:"name" validate:"required"`
	Role         string       `json:"role" db:"role"`
	Salary       float64      `json:"salary" db:"salary"`
	Description  string       `json:"description" db:"description"`
	Availability Availability `json:"availability" db:"availability"`
	Location     string       `json:"location" db:"location"`
	AISummary    *string      `json:"ai_summary,omitempty" db:"ai_summary"`
	Created      int64        `json:"created" db:"created"`
}

type Applicant struct {
	ID      int64  `json:"id" db:"id"`
	OfferID int64  `json:"offer_id" db:"offer_id"`
	Name    string `json:"name" db:"name"`
	Email   string `json:"email" db:"email"`
	Status  string `json:"status" db:"status"`
	Created int64  `json:"created" db:"created"`
	Updated int64  `json:"updated" db:"updated"`
}

type Interview struct {
	ID           int64  `json:"id" db:"id"`
	ApplicantID  int64  `json:"applicant_id" db:"applicant_id"`
	OfferID      int64  `json:"offer_id" db:"offer_id"`
	ScheduledAt  int64  `json:"scheduled_at" db:"scheduled_at"`
	Notes        string `json:"notes,omitempty" db:"notes"`
	ReminderSent bool   `json:"reminder_sent" db:"reminder_sent"`
	Created      int64  `json:"created" db:"created"`
}
