package assistant

import (
	"context"
	"log/slog"
	"sync"

	"github.com/garnizeh/offerdesk/pkg/repository"
)

// Manager holds one active session per recruiter. Sessions are created
// lazily on first use and dropped when the recruiter abandons the
// conversation; the draft lives only in memory.
type Manager struct {
	mu       sync.Mutex
	sessions map[int64]*Session

	offers    repository.OfferRepo
	answerer  Answerer
	onCreated func(ctx context.Context, offerID int64)
	logger    *slog.Logger
}

func NewManager(offers repository.OfferRepo, answerer Answerer, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		sessions: make(map[int64]*Session),
		offers:   offers,
		answerer: answerer,
		logger:   logger,
	}
}

// SetOfferCreatedHook registers a hook applied to every session, invoked
// after each successful offer submission.
func (m *Manager) SetOfferCreatedHook(fn func(ctx context.Context, offerID int64)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onCreated = fn
	for _, s := range m.sessions {
		s.OnOfferCreated(fn)
	}
}

// Session returns the recruiter's session, creating it if needed.
func (m *Manager) Session(recruiterID int64) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[recruiterID]; ok {
		return s
	}
	s := NewSession(recruiterID, m.offers, m.answerer, m.logger)
	if m.onCreated != nil {
		s.OnOfferCreated(m.onCreated)
	}
	m.sessions[recruiterID] = s
	return s
}

// Reset drops the recruiter's session and any in-memory draft.
func (m *Manager) Reset(recruiterID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, recruiterID)
}
