package assistant

import (
	"fmt"
	"strings"
	"time"

	"github.com/garnizeh/offerdesk/pkg/models"
)

// Draft is the in-progress work offer being assembled across chat turns.
// A draft is complete when all six fields are set.
type Draft struct {
	Name         string              `json:"name,omitempty"`
	Role         string              `json:"role,omitempty"`
	Salary       *float64            `json:"salary,omitempty"`
	Description  string              `json:"description,omitempty"`
	Availability models.Availability `json:"availability,omitempty"`
	Location     string              `json:"location,omitempty"`
}

// ExtractionResult holds only what was found in a single utterance. It has
// the same shape as Draft but must always be merged, never used directly.
type ExtractionResult struct {
	Name         string              `json:"name,omitempty"`
	Role         string              `json:"role,omitempty"`
	Salary       *float64            `json:"salary,omitempty"`
	Description  string              `json:"description,omitempty"`
	Availability models.Availability `json:"availability,omitempty"`
	Location     string              `json:"location,omitempty"`
}

// fieldOrder fixes the order used for prompts and completion checks.
var fieldOrder = []string{"name", "role", "salary", "description", "availability", "location"}

var fieldLabels = map[string]string{
	"name":         "offer name",
	"role":         "role",
	"salary":       "salary",
	"description":  "description",
	"availability": "availability (remote, hybrid or on-site)",
	"location":     "location",
}

// Merge folds an extraction result into a prior draft. A field from the
// result wins only when it is set; a previously known field is never
// cleared.
func Merge(prior Draft, res ExtractionResult) Draft {
	out := prior
	if res.Name != "" {
		out.Name = res.Name
	}
	if res.Role != "" {
		out.Role = res.Role
	}
	if res.Salary != nil {
		v := *res.Salary
		out.Salary = &v
	}
	if res.Description != "" {
		out.Description = res.Description
	}
	if res.Availability != "" {
		out.Availability = res.Availability
	}
	if res.Location != "" {
		out.Location = res.Location
	}
	return out
}

// MissingFields returns the names of unset fields in the fixed prompt order.
func (d Draft) MissingFields() []string {
	var missing []string
	for _, f := range fieldOrder {
		if !d.has(f) {
			missing = append(missing, f)
		}
	}
	return missing
}

// Complete reports whether every field of the draft is set.
func (d Draft) Complete() bool {
	return len(d.MissingFields()) == 0
}

func (d Draft) has(field string) bool {
	switch field {
	case "name":
		return d.Name != ""
	case "role":
		return d.Role != ""
	case "salary":
		return d.Salary != nil
	case "description":
		return d.Description != ""
	case "availability":
		return d.Availability != ""
	case "location":
		return d.Location != ""
	}
	return false
}

// Summary renders the captured fields as a human-readable list.
func (d Draft) Summary() string {
	var parts []string
	if d.Name != "" {
		parts = append(parts, fmt.Sprintf("name %q", d.Name))
	}
	if d.Role != "" {
		parts = append(parts, fmt.Sprintf("role %q", d.Role))
	}
	if d.Salary != nil {
		parts = append(parts, fmt.Sprintf("salary %g", *d.Salary))
	}
	if d.Description != "" {
		parts = append(parts, fmt.Sprintf("description %q", d.Description))
	}
	if d.Availability != "" {
		parts = append(parts, fmt.Sprintf("availability %s", d.Availability))
	}
	if d.Location != "" {
		parts = append(parts, fmt.Sprintf("location %q", d.Location))
	}
	return strings.Join(parts, ", ")
}

// ToOffer coerces a complete draft into a persistable work offer. Callers
// must check Complete first; unset fields come out as zero values.
func (d Draft) ToOffer(recruiterID int64) *models.WorkOffer {
	o := &models.WorkOffer{
		RecruiterID:  recruiterID,
		Name:         d.Name,
		Role:         d.Role,
		Description:  d.Description,
		Availability: d.Availability,
		Location:     d.Location,
		Created:      time.Now().UTC().UnixMilli(),
	}
	if d.Salary != nil {
		o.Salary = *d.Salary
	}
	return o
}
