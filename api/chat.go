package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/garnizeh/offerdesk/internal/assistant"
	"github.com/garnizeh/offerdesk/pkg/repository"
)

type ChatHandler struct {
	manager       *assistant.Manager
	offerRepo     repository.OfferRepo
	applicantRepo repository.ApplicantRepo
}

func NewChatHandler(m *assistant.Manager, or repository.OfferRepo, ar repository.ApplicantRepo) *ChatHandler {
	return &ChatHandler{manager: m, offerRepo: or, applicantRepo: ar}
}

type chatRequest struct {
	Message string `json:"message"`
	Page    string `json:"page,omitempty"`
}

// Chat routes one conversational turn through the recruiter's session. The
// reply always carries the session state so the client can render the
// slot-filling progress.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}

	recruiterID := recruiterFromContext(r.Context())
	if recruiterID <= 0 {
		http.Error(w, "missing recruiter identity", http.StatusUnauthorized)
		return
	}

	session := h.manager.Session(recruiterID)
	tc := h.buildTurnContext(r, recruiterID, session)

	reply := session.HandleTurn(r.Context(), req.Message, tc)
	writeJSON(w, reply, http.StatusOK)
}

// ResetSession drops the recruiter's session, discarding any draft.
func (h *ChatHandler) ResetSession(w http.ResponseWriter, r *http.Request) {
	recruiterID := recruiterFromContext(r.Context())
	if recruiterID <= 0 {
		http.Error(w, "missing recruiter identity", http.StatusUnauthorized)
		return
	}

	h.manager.Reset(recruiterID)
	w.WriteHeader(http.StatusNoContent)
}

// buildTurnContext gathers the recruiter's surroundings so general-purpose
// questions can be answered with real data. Lookups are best effort; a failed
// count never blocks the turn.
func (h *ChatHandler) buildTurnContext(r *http.Request, recruiterID int64, session *assistant.Session) assistant.TurnContext {
	ctx := r.Context()
	tc := assistant.TurnContext{Page: r.URL.Query().Get("page")}

	if total, err := h.offerRepo.CountByRecruiter(ctx, recruiterID); err == nil {
		tc.OfferCount = total
	} else {
		logger.Warn("count offers for chat context", "recruiter_id", recruiterID, "err", err)
	}

	offers, err := h.offerRepo.ListByRecruiter(ctx, recruiterID, 5, 0)
	if err != nil {
		logger.Warn("list offers for chat context", "recruiter_id", recruiterID, "err", err)
	} else {
		tc.Offers = offers
		for _, o := range offers {
			if n, err := h.applicantRepo.CountByOffer(ctx, o.ID); err == nil {
				tc.ApplicantCount += n
			}
		}
	}

	if session.State() != assistant.StateIdle {
		d := session.Draft()
		tc.Draft = &d
	}

	return tc
}
