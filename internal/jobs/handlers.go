package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/garnizeh/offerdesk/pkg/models"
	"github.com/garnizeh/offerdesk/pkg/repository"
)

// Job types handled by the worker pool.
const (
	TypeOfferEnrich     = "offer.enrich"
	TypeInterviewRemind = "interview.remind"
)

// Summarizer produces an AI summary for a stored offer.
type Summarizer interface {
	Summarize(ctx context.Context, offer models.WorkOffer) (string, error)
}

// NewHandlers wires the job handlers for the worker pool.
func NewHandlers(offers repository.OfferRepo, interviews repository.InterviewRepo, s Summarizer, logger *slog.Logger) map[string]Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return map[string]Handler{
		TypeOfferEnrich:     offerEnrichHandler(offers, s, logger),
		TypeInterviewRemind: interviewRemindHandler(interviews, logger),
	}
}

// offerEnrichHandler asks the model for a one-paragraph summary of a newly
// created offer and stores it on the offer row.
func offerEnrichHandler(offers repository.OfferRepo, s Summarizer, logger *slog.Logger) Handler {
	return func(ctx context.Context, j *Job) error {
		var p struct {
			OfferID int64 `json:"offer_id"`
		}
		if err := json.Unmarshal(j.Payload, &p); err != nil {
			return fmt.Errorf("decode payload: %w", err)
		}

		offer, err := offers.GetOffer(ctx, p.OfferID)
		if err != nil {
			return fmt.Errorf("get offer %d: %w", p.OfferID, err)
		}
		if offer == nil {
			// offer was deleted before the job ran; nothing to do
			logger.Info("offer enrich skipped, offer gone", "offer_id", p.OfferID)
			return nil
		}

		summary, err := s.Summarize(ctx, *offer)
		if err != nil {
			return fmt.Errorf("summarize offer %d: %w", p.OfferID, err)
		}

		if err := offers.UpdateAISummary(ctx, offer.ID, summary); err != nil {
			return fmt.Errorf("store summary for offer %d: %w", p.OfferID, err)
		}

		logger.Info("offer enriched", "offer_id", offer.ID)
		return nil
	}
}

// interviewRemindHandler marks an interview reminder as sent. Delivery is a
// log line for now; the job exists so scheduling and retry semantics are in
// place when a mailer is attached.
func interviewRemindHandler(interviews repository.InterviewRepo, logger *slog.Logger) Handler {
	return func(ctx context.Context, j *Job) error {
		var p struct {
			InterviewID int64 `json:"interview_id"`
		}
		if err := json.Unmarshal(j.Payload, &p); err != nil {
			return fmt.Errorf("decode payload: %w", err)
		}

		iv, err := interviews.GetInterview(ctx, p.InterviewID)
		if err != nil {
			return fmt.Errorf("get interview %d: %w", p.InterviewID, err)
		}
		if iv == nil || iv.ReminderSent {
			return nil
		}

		if err := interviews.MarkReminderSent(ctx, iv.ID); err != nil {
			return fmt.Errorf("mark reminder sent %d: %w", iv.ID, err)
		}

		logger.Info("interview reminder", "interview_id", iv.ID, "applicant_id", iv.ApplicantID, "scheduled_at", iv.ScheduledAt)
		return nil
	}
}
