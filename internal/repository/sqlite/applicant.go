package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/garnizeh/offerdesk/pkg/models"
)

func (r *SQLiteRepo) CreateApplicant(ctx context.Context, a *models.Applicant) (int64, error) {
	if a == nil {
		return 0, fmt.Errorf("applicant is nil")
	}

	status := a.Status
	if status == "" {
		status = "NEW"
	}
	ts := now()

	res, err := r.conn.Exec(ctx,
		`INSERT INTO applicants (offer_id, name, email, status, created, updated) VALUES (?, ?, ?, ?, ?, ?)`,
		a.OfferID, a.Name, a.Email, status, ts, ts)
	if err != nil {
		return 0, fmt.Errorf("create applicant: %w", err)
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetApplicant(ctx context.Context, id int64) (*models.Applicant, error) {
	row := r.conn.QueryRow(ctx,
		`SELECT id, offer_id, name, email, status, created, updated FROM applicants WHERE id = ?`, id)

	var a models.Applicant
	if err := row.Scan(&a.ID, &a.OfferID, &a.Name, &a.Email, &a.Status, &a.Created, &a.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan applicant: %w", err)
	}
	return &a, nil
}

func (r *SQLiteRepo) ListByOffer(ctx context.Context, offerID int64, limit, offset int) ([]models.Applicant, error) {
	rows, err := r.conn.Query(ctx,
		`SELECT id, offer_id, name, email, status, created, updated FROM applicants WHERE offer_id = ? ORDER BY id ASC LIMIT ? OFFSET ?`,
		offerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list applicants: %w", err)
	}
	defer rows.Close()

	var out []models.Applicant
	for rows.Next() {
		var a models.Applicant
		if err := rows.Scan(&a.ID, &a.OfferID, &a.Name, &a.Email, &a.Status, &a.Created, &a.Updated); err != nil {
			return nil, fmt.Errorf("scan applicant row: %w", err)
		}
		out = append(out, a)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) CountByOffer(ctx context.Context, offerID int64) (int64, error) {
	var count int64
	row := r.conn.QueryRow(ctx, `SELECT COUNT(1) FROM applicants WHERE offer_id = ?`, offerID)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count applicants: %w", err)
	}
	return count, nil
}

func (r *SQLiteRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	_, err := r.conn.Exec(ctx, `UPDATE applicants SET status = ?, updated = ? WHERE id = ?`, status, now(), id)
	return err
}
