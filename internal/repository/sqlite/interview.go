package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/garnizeh/offerdesk/pkg/models"
)

func (r *SQLiteRepo) CreateInterview(ctx context.Context, iv *models.Interview) (int64, error) {
	if iv == nil {
		return 0, fmt.Errorf("interview is nil")
	}

	res, err := r.conn.Exec(ctx,
		`INSERT INTO interviews (applicant_id, offer_id, scheduled_at, notes, reminder_sent, created) VALUES (?, ?, ?, ?, 0, ?)`,
		iv.ApplicantID, iv.OfferID, iv.ScheduledAt, iv.Notes, now())
	if err != nil {
		return 0, fmt.Errorf("create interview: %w", err)
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetInterview(ctx context.Context, id int64) (*models.Interview, error) {
	row := r.conn.QueryRow(ctx,
		`SELECT id, applicant_id, offer_id, scheduled_at, notes, reminder_sent, created FROM interviews WHERE id = ?`, id)

	var iv models.Interview
	var reminder int
	if err := row.Scan(&iv.ID, &iv.ApplicantID, &iv.OfferID, &iv.ScheduledAt, &iv.Notes, &reminder, &iv.Created); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan interview: %w", err)
	}
	iv.ReminderSent = reminder != 0
	return &iv, nil
}

func (r *SQLiteRepo) ListByApplicant(ctx context.Context, applicantID int64) ([]models.Interview, error) {
	rows, err := r.conn.Query(ctx,
		`SELECT id, applicant_id, offer_id, scheduled_at, notes, reminder_sent, created FROM interviews WHERE applicant_id = ? ORDER BY scheduled_at ASC`,
		applicantID)
	if err != nil {
		return nil, fmt.Errorf("list interviews: %w", err)
	}
	defer rows.Close()

	var out []models.Interview
	for rows.Next() {
		var iv models.Interview
		var reminder int
		if err := rows.Scan(&iv.ID, &iv.ApplicantID, &iv.OfferID, &iv.ScheduledAt, &iv.Notes, &reminder, &iv.Created); err != nil {
			return nil, fmt.Errorf("scan interview row: %w", err)
		}
		iv.ReminderSent = reminder != 0
		out = append(out, iv)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) MarkReminderSent(ctx context.Context, id int64) error {
	_, err := r.conn.Exec(ctx, `UPDATE interviews SET reminder_sent = 1 WHERE id = ?`, id)
	return err
}
