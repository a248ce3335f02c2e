package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/garnizeh/offerdesk/internal/assistant"
	"github.com/garnizeh/offerdesk/internal/jobs"
	"github.com/garnizeh/offerdesk/pkg/models"
	"github.com/garnizeh/offerdesk/pkg/repository"
	"github.com/gorilla/mux"
)

// Enqueuer is the slice of the worker pool the handlers need.
type Enqueuer interface {
	Enqueue(ctx context.Context, typ string, payload any, priority int, maxAttempts int) (int64, error)
	EnqueueAt(ctx context.Context, typ string, payload any, priority int, maxAttempts int, at time.Time) (int64, error)
}

type OffersHandler struct {
	offerRepo repository.OfferRepo
	enqueuer  Enqueuer
}

func NewOffersHandler(or repository.OfferRepo, eq Enqueuer) *OffersHandler {
	return &OffersHandler{offerRepo: or, enqueuer: eq}
}

type postOfferRequest struct {
	Name         string  `json:"name"`
	Role         string  `json:"role"`
	Salary       float64 `json:"salary"`
	Description  string  `json:"description"`
	Availability string  `json:"availability"`
	Location     string  `json:"location"`
}

type postOfferResponse struct {
	ID int64 `json:"id"`
}

func (h *OffersHandler) CreateOffer(w http.ResponseWriter, r *http.Request) {
	var req postOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	recruiterID := recruiterFromContext(r.Context())
	if recruiterID <= 0 {
		http.Error(w, "missing recruiter identity", http.StatusUnauthorized)
		return
	}

	availability, err := models.ParseAvailability(strings.TrimSpace(req.Availability))
	if err != nil {
		http.Error(w, "invalid availability", http.StatusBadRequest)
		return
	}

	offer := &models.WorkOffer{
		RecruiterID:  recruiterID,
		Name:         strings.TrimSpace(req.Name),
		Role:         strings.TrimSpace(req.Role),
		Salary:       req.Salary,
		Description:  strings.TrimSpace(req.Description),
		Availability: availability,
		Location:     strings.TrimSpace(req.Location),
	}

	// same submission contract the assistant's completion gate enforces
	if err := assistant.ValidateOffer(r.Context(), offer); err != nil {
		http.Error(w, "missing or invalid fields", http.StatusBadRequest)
		return
	}

	id, err := h.offerRepo.CreateOffer(r.Context(), offer)
	if err != nil {
		http.Error(w, "failed to store offer", http.StatusInternalServerError)
		return
	}

	if h.enqueuer != nil {
		payload := map[string]any{"offer_id": id}
		if _, err := h.enqueuer.Enqueue(r.Context(), jobs.TypeOfferEnrich, payload, 100, 3); err != nil {
			logger.Warn("failed to enqueue offer.enrich job", "offer_id", id, "err", err)
		}
	}

	writeJSON(w, postOfferResponse{ID: id}, http.StatusCreated)
}

func (h *OffersHandler) ListOffers(w http.ResponseWriter, r *http.Request) {
	recruiterID := recruiterFromContext(r.Context())
	if recruiterID <= 0 {
		http.Error(w, "missing recruiter identity", http.StatusUnauthorized)
		return
	}

	q := r.URL.Query()
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

	offers, err := h.offerRepo.ListByRecruiter(r.Context(), recruiterID, limit, offset)
	if err != nil {
		http.Error(w, "failed to list offers", http.StatusInternalServerError)
		return
	}

	total, err := h.offerRepo.CountByRecruiter(r.Context(), recruiterID)
	if err != nil {
		http.Error(w, "failed to count offers", http.StatusInternalServerError)
		return
	}

	if offers == nil {
		offers = []models.WorkOffer{}
	}

	resp := map[string]any{
		"total":  total,
		"limit":  limit,
		"offset": offset,
		"items":  offers,
	}

	writeJSON(w, resp, http.StatusOK)
}

func (h *OffersHandler) GetOffer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid offer id", http.StatusBadRequest)
		return
	}

	offer, err := h.offerRepo.GetOffer(r.Context(), id)
	if err != nil {
		http.Error(w, "failed to load offer", http.StatusInternalServerError)
		return
	}
	if offer == nil || offer.RecruiterID != recruiterFromContext(r.Context()) {
		http.Error(w, "offer not found", http.StatusNotFound)
		return
	}

	writeJSON(w, offer, http.StatusOK)
}

func (h *OffersHandler) DeleteOffer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid offer id", http.StatusBadRequest)
		return
	}

	offer, err := h.offerRepo.GetOffer(r.Context(), id)
	if err != nil {
		http.Error(w, "failed to load offer", http.StatusInternalServerError)
		return
	}
	if offer == nil || offer.RecruiterID != recruiterFromContext(r.Context()) {
		http.Error(w, "offer not found", http.StatusNotFound)
		return
	}

	if err := h.offerRepo.DeleteOffer(r.Context(), id); err != nil {
		http.Error(w, "failed to delete offer", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
