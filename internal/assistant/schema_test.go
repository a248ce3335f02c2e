package assistant

import (
	"context"
	"strings"
	"testing"

	"github.com/garnizeh/offerdesk/pkg/models"
)

func validOffer() *models.WorkOffer {
	return &models.WorkOffer{
		Name:         "Backend Engineer",
		Role:         "employee",
		Salary:       85000,
		Description:  "Build the payments platform",
		Availability: "remote",
		Location:     "Lisbon",
	}
}

func TestValidateOffer(t *testing.T) {
	ctx := context.Background()
	if err := ValidateOffer(ctx, validOffer()); err != nil {
		t.Fatalf("valid offer rejected: %v", err)
	}
}

func TestValidateOffer_MissingField(t *testing.T) {
	ctx := context.Background()
	o := validOffer()
	o.Location = ""
	err := ValidateOffer(ctx, o)
	if err == nil {
		t.Fatalf("expected validation error for empty location")
	}
	if !strings.Contains(err.Error(), "schema") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateOffer_BadAvailability(t *testing.T) {
	ctx := context.Background()
	o := validOffer()
	o.Availability = "weekends"
	if err := ValidateOffer(ctx, o); err == nil {
		t.Fatalf("expected validation error for availability outside the enum")
	}
}

func TestValidateOffer_NegativeSalary(t *testing.T) {
	ctx := context.Background()
	o := validOffer()
	o.Salary = -10
	if err := ValidateOffer(ctx, o); err == nil {
		t.Fatalf("expected validation error for negative salary")
	}
}
