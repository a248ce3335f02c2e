package mock

import (
	"context"
	"sync"

	"github.com/garnizeh/offerdesk/pkg/models"
)

// Test helpers and mocks
type Mocks struct {
	Recruiters *RecruiterRepo
	Offers     *OfferRepo
}

func NewMocks() *Mocks {
	return &Mocks{
		Recruiters: &RecruiterRepo{},
		Offers:     &OfferRepo{},
	}
}

type RecruiterRepo struct {
	Stored    *models.Recruiter
	CreateErr error
}

func (m *RecruiterRepo) CreateRecruiter(ctx context.Context, r *models.Recruiter) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.Stored = &models.Recruiter{ID: 1, Name: r.Name, Email: r.Email, Company: r.Company, PasswordHash: r.PasswordHash}
	return 1, nil
}

func (m *RecruiterRepo) GetByID(ctx context.Context, id int64) (*models.Recruiter, error) {
	if m.Stored != nil && m.Stored.ID == id {
		return m.Stored, nil
	}
	return nil, nil
}

func (m *RecruiterRepo) GetByEmail(ctx context.Context, email string) (*models.Recruiter, error) {
	if m.Stored != nil && m.Stored.Email == email {
		return m.Stored, nil
	}
	return nil, nil
}

// OfferRepo is an in-memory offer store; CreateErr lets tests force the
// submission path to fail.
type OfferRepo struct {
	mu        sync.Mutex
	Offers    []models.WorkOffer
	CreateErr error
}

func (m *OfferRepo) CreateOffer(ctx context.Context, o *models.WorkOffer) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	id := int64(len(m.Offers) + 1)
	stored := *o
	stored.ID = id
	m.Offers = append(m.Offers, stored)
	return id, nil
}

func (m *OfferRepo) GetOffer(ctx context.Context, id int64) (*models.WorkOffer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.Offers {
		if m.Offers[i].ID == id {
			o := m.Offers[i]
			return &o, nil
		}
	}
	return nil, nil
}

func (m *OfferRepo) ListByRecruiter(ctx context.Context, recruiterID int64, limit, offset int) ([]models.WorkOffer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.WorkOffer
	for _, o := range m.Offers {
		if o.RecruiterID == recruiterID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *OfferRepo) CountByRecruiter(ctx context.Context, recruiterID int64) (int64, error) {
	out, _ := m.ListByRecruiter(ctx, recruiterID, 0, 0)
	return int64(len(out)), nil
}

func (m *OfferRepo) UpdateAISummary(ctx context.Context, id int64, summary string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.Offers {
		if m.Offers[i].ID == id {
			s := summary
			m.Offers[i].AISummary = &s
		}
	}
	return nil
}

func (m *OfferRepo) DeleteOffer(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.Offers {
		if m.Offers[i].ID == id {
			m.Offers = append(m.Offers[:i], m.Offers[i+1:]...)
			break
		}
	}
	return nil
}
