package repository

import (
	"context"

	"github.com/garnizeh/offerdesk/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.

type RecruiterRepo interface {
	CreateRecruiter(ctx context.Context, r *models.Recruiter) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Recruiter, error)
	GetByEmail(ctx context.Context, email string) (*models.Recruiter, error)
}

type OfferRepo interface {
	CreateOffer(ctx context.Context, o *models.WorkOffer) (int64, error)
	GetOffer(ctx context.Context, id int64) (*models.WorkOffer, error)
	ListByRecruiter(ctx context.Context, recruiterID int64, limit, offset int) ([]models.WorkOffer, error)
	CountByRecruiter(ctx context.Context, recruiterID int64) (int64, error)
	UpdateAISummary(ctx context.Context, id int64, summary string) error
	DeleteOffer(ctx context.Context, id int64) error
}

type ApplicantRepo interface {
	CreateApplicant(ctx context.Context, a *models.Applicant) (int64, error)
	GetApplicant(ctx context.Context, id int64) (*models.Applicant, error)
	ListByOffer(ctx context.Context, offerID int64, limit, offset int) ([]models.Applicant, error)
	CountByOffer(ctx context.Context, offerID int64) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}

type InterviewRepo interface {
	CreateInterview(ctx context.Context, iv *models.Interview) (int64, error)
	GetInterview(ctx context.Context, id int64) (*models.Interview, error)
	ListByApplicant(ctx context.Context, applicantID int64) ([]models.Interview, error)
	MarkReminderSent(ctx context.Context, id int64) error
}
