package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/garnizeh/offerdesk/internal/jobs"
	"github.com/garnizeh/offerdesk/pkg/models"
	"github.com/garnizeh/offerdesk/pkg/repository"
)

// reminderLead is how long before the scheduled time the reminder job fires.
const reminderLead = time.Hour

type InterviewsHandler struct {
	interviewRepo repository.InterviewRepo
	applicantRepo repository.ApplicantRepo
	enqueuer      Enqueuer
}

func NewInterviewsHandler(ir repository.InterviewRepo, ar repository.ApplicantRepo, eq Enqueuer) *InterviewsHandler {
	return &InterviewsHandler{interviewRepo: ir, applicantRepo: ar, enqueuer: eq}
}

type postInterviewRequest struct {
	ApplicantID int64  `json:"applicant_id"`
	ScheduledAt int64  `json:"scheduled_at"` // unix millis
	Notes       string `json:"notes"`
}

func (h *InterviewsHandler) CreateInterview(w http.ResponseWriter, r *http.Request) {
	var req postInterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if req.ApplicantID <= 0 || req.ScheduledAt <= 0 {
		http.Error(w, "missing fields", http.StatusBadRequest)
		return
	}

	scheduled := time.UnixMilli(req.ScheduledAt)
	if scheduled.Before(time.Now()) {
		http.Error(w, "scheduled_at must be in the future", http.StatusBadRequest)
		return
	}

	applicant, err := h.applicantRepo.GetApplicant(r.Context(), req.ApplicantID)
	if err != nil {
		http.Error(w, "failed to load applicant", http.StatusInternalServerError)
		return
	}
	if applicant == nil {
		http.Error(w, "applicant not found", http.StatusNotFound)
		return
	}

	iv := &models.Interview{
		ApplicantID: req.ApplicantID,
		OfferID:     applicant.OfferID,
		ScheduledAt: req.ScheduledAt,
		Notes:       req.Notes,
	}
	id, err := h.interviewRepo.CreateInterview(r.Context(), iv)
	if err != nil {
		http.Error(w, "failed to store interview", http.StatusInternalServerError)
		return
	}

	if h.enqueuer != nil {
		remindAt := scheduled.Add(-reminderLead)
		if remindAt.Before(time.Now()) {
			remindAt = time.Now()
		}
		payload := map[string]any{"interview_id": id}
		if _, err := h.enqueuer.EnqueueAt(r.Context(), jobs.TypeInterviewRemind, payload, 50, 3, remindAt); err != nil {
			logger.Warn("failed to enqueue interview.remind job", "interview_id", id, "err", err)
		}
	}

	writeJSON(w, map[string]any{"id": id}, http.StatusCreated)
}

func (h *InterviewsHandler) ListInterviews(w http.ResponseWriter, r *http.Request) {
	applicantStr := r.URL.Query().Get("applicant_id")
	if applicantStr == "" {
		http.Error(w, "applicant_id is required", http.StatusBadRequest)
		return
	}
	applicantID, err := strconv.ParseInt(applicantStr, 10, 64)
	if err != nil || applicantID <= 0 {
		http.Error(w, "invalid applicant_id", http.StatusBadRequest)
		return
	}

	interviews, err := h.interviewRepo.ListByApplicant(r.Context(), applicantID)
	if err != nil {
		http.Error(w, "failed to list interviews", http.StatusInternalServerError)
		return
	}
	if interviews == nil {
		interviews = []models.Interview{}
	}

	writeJSON(w, map[string]any{"items": interviews}, http.StatusOK)
}
