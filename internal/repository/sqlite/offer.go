package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/garnizeh/offerdesk/pkg/models"
)

func (r *SQLiteRepo) CreateOffer(ctx context.Context, o *models.WorkOffer) (int64, error) {
	if o == nil {
		return 0, fmt.Errorf("offer is nil")
	}

	created := o.Created
	if created == 0 {
		created = now()
	}

	res, err := r.conn.Exec(ctx,
		`INSERT INTO work_offers (recruiter_id, name, role, salary, description, availability, location, created) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		o.RecruiterID, o.Name, o.Role, o.Salary, o.Description, string(o.Availability), o.Location, created)
	if err != nil {
		return 0, fmt.Errorf("create offer: %w", err)
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetOffer(ctx context.Context, id int64) (*models.WorkOffer, error) {
	row := r.conn.QueryRow(ctx,
		`SELECT id, recruiter_id, name, role, salary, description, availability, location, ai_summary, created FROM work_offers WHERE id = ?`, id)

	var o models.WorkOffer
	var availability string
	var aiSummary sql.NullString
	if err := row.Scan(&o.ID, &o.RecruiterID, &o.Name, &o.Role, &o.Salary, &o.Description, &availability, &o.Location, &aiSummary, &o.Created); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan offer: %w", err)
	}
	o.Availability = models.Availability(availability)
	if aiSummary.Valid {
		o.AISummary = &aiSummary.String
	}
	return &o, nil
}

func (r *SQLiteRepo) ListByRecruiter(ctx context.Context, recruiterID int64, limit, offset int) ([]models.WorkOffer, error) {
	rows, err := r.conn.Query(ctx,
		`SELECT id, recruiter_id, name, role, salary, description, availability, location, ai_summary, created FROM work_offers WHERE recruiter_id = ? ORDER BY id DESC LIMIT ? OFFSET ?`,
		recruiterID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}
	defer rows.Close()

	var out []models.WorkOffer
	for rows.Next() {
		var o models.WorkOffer
		var availability string
		var aiSummary sql.NullString
		if err := rows.Scan(&o.ID, &o.RecruiterID, &o.Name, &o.Role, &o.Salary, &o.Description, &availability, &o.Location, &aiSummary, &o.Created); err != nil {
			return nil, fmt.Errorf("scan offer row: %w", err)
		}
		o.Availability = models.Availability(availability)
		if aiSummary.Valid {
			o.AISummary = &aiSummary.String
		}
		out = append(out, o)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) CountByRecruiter(ctx context.Context, recruiterID int64) (int64, error) {
	var count int64
	row := r.conn.QueryRow(ctx, `SELECT COUNT(1) FROM work_offers WHERE recruiter_id = ?`, recruiterID)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count offers: %w", err)
	}
	return count, nil
}

func (r *SQLiteRepo) UpdateAISummary(ctx context.Context, id int64, summary string) error {
	_, err := r.conn.Exec(ctx, `UPDATE work_offers SET ai_summary = ? WHERE id = ?`, summary, id)
	return err
}

func (r *SQLiteRepo) DeleteOffer(ctx context.Context, id int64) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM work_offers WHERE id = ?`, id)
	return err
}
