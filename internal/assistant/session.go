package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/garnizeh/offerdesk/pkg/models"
	"github.com/garnizeh/offerdesk/pkg/repository"
	"github.com/google/uuid"
)

// State is the per-session slot-filling phase.
type State string

const (
	StateIdle       State = "idle"
	StateCollecting State = "collecting"
	StateSubmitting State = "submitting"
)

// ErrSubmitRejected wraps any failure of the create-offer call. The draft is
// always preserved when this is returned.
var ErrSubmitRejected = errors.New("offer submission rejected")

// Reply is the assistant's answer for a single turn.
type Reply struct {
	Message string   `json:"message"`
	State   State    `json:"state"`
	Missing []string `json:"missing_fields,omitempty"`
	OfferID int64    `json:"offer_id,omitempty"`
}

// Session owns one recruiter's conversation: the in-progress draft and the
// slot-filling state machine. Turns are serialized by the session mutex; no
// other writer touches the draft.
type Session struct {
	ID          string
	RecruiterID int64

	mu    sync.Mutex
	state State
	draft Draft

	offers   repository.OfferRepo
	answerer Answerer
	created  func(ctx context.Context, offerID int64)
	logger   *slog.Logger
}

func NewSession(recruiterID int64, offers repository.OfferRepo, answerer Answerer, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		ID:          uuid.NewString(),
		RecruiterID: recruiterID,
		state:       StateIdle,
		offers:      offers,
		answerer:    answerer,
		logger:      logger,
	}
}

// OnOfferCreated registers a hook invoked after a successful submission,
// e.g. to enqueue follow-up background work.
func (s *Session) OnOfferCreated(fn func(ctx context.Context, offerID int64)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = fn
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Draft() Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// Cancel abandons the current draft and returns the session to idle.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = Draft{}
	s.state = StateIdle
}

// HasCreationIntent reports whether an utterance asks to create an offer.
func HasCreationIntent(text string) bool {
	lower := strings.ToLower(text)
	if !strings.Contains(lower, "create") {
		return false
	}
	return strings.Contains(lower, "work offer") ||
		strings.Contains(lower, "job") ||
		strings.Contains(lower, "position")
}

var cancelPhrases = map[string]struct{}{
	"cancel":     {},
	"stop":       {},
	"never mind": {},
	"nevermind":  {},
	"forget it":  {},
}

func isCancellation(text string) bool {
	_, ok := cancelPhrases[strings.ToLower(strings.TrimSpace(text))]
	return ok
}

// HandleTurn processes one utterance. While collecting, the utterance is
// routed through the extractor and merged into the draft; otherwise it goes
// to the chat collaborator. All failures become user-visible messages, never
// errors: every path leaves the session able to continue.
func (s *Session) HandleTurn(ctx context.Context, utterance string, tc TurnContext) Reply {
	s.mu.Lock()
	defer s.mu.Unlock()

	text := strings.TrimSpace(utterance)
	collecting := s.state == StateCollecting

	if collecting && isCancellation(text) {
		s.draft = Draft{}
		s.state = StateIdle
		return Reply{Message: "Okay, I've discarded the offer draft. Let me know when you want to start another one.", State: s.state}
	}

	if !collecting && !HasCreationIntent(text) {
		answer, err := s.answerer.Answer(ctx, text, tc)
		if err != nil {
			s.logger.Warn("chat fallback failed", "session_id", s.ID, "err", err)
			answer = CannedFallbackReply
		}
		return Reply{Message: answer, State: s.state}
	}

	s.state = StateCollecting
	res := Extract(text)
	s.draft = Merge(s.draft, res)

	missing := s.draft.MissingFields()
	if len(missing) > 0 {
		return Reply{Message: promptForMissing(s.draft, missing), State: s.state, Missing: missing}
	}

	// completion gate: every field present, submit to the persistence
	// collaborator
	s.state = StateSubmitting
	offer := s.draft.ToOffer(s.RecruiterID)
	id, err := s.submit(ctx, offer)
	if err != nil {
		// draft stays intact so the recruiter can retry without retyping
		s.logger.Warn("offer submission failed", "session_id", s.ID, "err", err)
		s.state = StateCollecting
		return Reply{
			Message: "I couldn't save the offer just now. Everything you told me is kept; send any message and I'll try again.",
			State:   s.state,
		}
	}

	s.draft = Draft{}
	s.state = StateIdle
	if s.created != nil {
		s.created(ctx, id)
	}
	return Reply{
		Message: fmt.Sprintf("Done! The offer %q was created with id %d.", offer.Name, id),
		State:   s.state,
		OfferID: id,
	}
}

func (s *Session) submit(ctx context.Context, offer *models.WorkOffer) (int64, error) {
	if err := ValidateOffer(ctx, offer); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSubmitRejected, err)
	}
	id, err := s.offers.CreateOffer(ctx, offer)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSubmitRejected, err)
	}
	return id, nil
}

func promptForMissing(d Draft, missing []string) string {
	labels := make([]string, 0, len(missing))
	for _, f := range missing {
		labels = append(labels, fieldLabels[f])
	}

	var sb strings.Builder
	if captured := d.Summary(); captured != "" {
		sb.WriteString("So far I have: ")
		sb.WriteString(captured)
		sb.WriteString(". ")
	}
	sb.WriteString("I still need: ")
	sb.WriteString(strings.Join(labels, ", "))
	sb.WriteString(".")
	return sb.String()
}
