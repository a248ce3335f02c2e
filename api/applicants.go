package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/garnizeh/offerdesk/internal/pipeline"
	"github.com/garnizeh/offerdesk/pkg/models"
	"github.com/garnizeh/offerdesk/pkg/repository"
	"github.com/gorilla/mux"
)

type ApplicantsHandler struct {
	applicantRepo repository.ApplicantRepo
	offerRepo     repository.OfferRepo
}

func NewApplicantsHandler(ar repository.ApplicantRepo, or repository.OfferRepo) *ApplicantsHandler {
	return &ApplicantsHandler{applicantRepo: ar, offerRepo: or}
}

type postApplicantRequest struct {
	OfferID int64  `json:"offer_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
}

func (h *ApplicantsHandler) CreateApplicant(w http.ResponseWriter, r *http.Request) {
	var req postApplicantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.OfferID <= 0 || req.Name == "" || req.Email == "" {
		http.Error(w, "missing fields", http.StatusBadRequest)
		return
	}

	offer, err := h.offerRepo.GetOffer(r.Context(), req.OfferID)
	if err != nil {
		http.Error(w, "failed to load offer", http.StatusInternalServerError)
		return
	}
	if offer == nil {
		http.Error(w, "offer not found", http.StatusNotFound)
		return
	}

	a := &models.Applicant{
		OfferID: req.OfferID,
		Name:    req.Name,
		Email:   req.Email,
		Status:  string(pipeline.StatusNew),
	}
	id, err := h.applicantRepo.CreateApplicant(r.Context(), a)
	if err != nil {
		http.Error(w, "failed to store applicant", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{"id": id}, http.StatusCreated)
}

func (h *ApplicantsHandler) ListApplicants(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	offerStr := q.Get("offer_id")
	if offerStr == "" {
		http.Error(w, "offer_id is required", http.StatusBadRequest)
		return
	}
	offerID, err := strconv.ParseInt(offerStr, 10, 64)
	if err != nil || offerID <= 0 {
		http.Error(w, "invalid offer_id", http.StatusBadRequest)
		return
	}

	limit := 50
	if l := q.Get("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 500 {
			limit = v
		}
	}
	offset := 0
	if o := q.Get("offset"); o != "" {
		if v, err := strconv.Atoi(o); err == nil && v >= 0 {
			offset = v
		}
	}

	applicants, err := h.applicantRepo.ListByOffer(r.Context(), offerID, limit, offset)
	if err != nil {
		http.Error(w, "failed to list applicants", http.StatusInternalServerError)
		return
	}

	total, err := h.applicantRepo.CountByOffer(r.Context(), offerID)
	if err != nil {
		http.Error(w, "failed to count applicants", http.StatusInternalServerError)
		return
	}

	if applicants == nil {
		applicants = []models.Applicant{}
	}

	resp := map[string]any{
		"total":  total,
		"limit":  limit,
		"offset": offset,
		"items":  applicants,
	}

	writeJSON(w, resp, http.StatusOK)
}

type patchStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus moves an applicant through the hiring pipeline. Transitions
// outside the pipeline graph are rejected with 409.
func (h *ApplicantsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid applicant id", http.StatusBadRequest)
		return
	}

	var req patchStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	to, err := pipeline.ParseStatus(strings.TrimSpace(req.Status))
	if err != nil {
		http.Error(w, "unknown status", http.StatusBadRequest)
		return
	}

	applicant, err := h.applicantRepo.GetApplicant(r.Context(), id)
	if err != nil {
		http.Error(w, "failed to load applicant", http.StatusInternalServerError)
		return
	}
	if applicant == nil {
		http.Error(w, "applicant not found", http.StatusNotFound)
		return
	}

	from, err := pipeline.ParseStatus(applicant.Status)
	if err != nil {
		http.Error(w, "applicant has corrupt status", http.StatusInternalServerError)
		return
	}

	if !pipeline.IsTransitionAllowed(from, to) {
		http.Error(w, "status transition not allowed", http.StatusConflict)
		return
	}

	if err := h.applicantRepo.UpdateStatus(r.Context(), id, string(to)); err != nil {
		http.Error(w, "failed to update status", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{"id": id, "status": to}, http.StatusOK)
}
