package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/garnizeh/offerdesk/pkg/models"
)

func (r *SQLiteRepo) CreateRecruiter(ctx context.Context, rec *models.Recruiter) (int64, error) {
	if rec == nil {
		return 0, fmt.Errorf("recruiter is nil")
	}

	res, err := r.conn.Exec(ctx,
		`INSERT INTO recruiters (name, email, company, password_hash, created) VALUES (?, ?, ?, ?, ?)`,
		rec.Name, rec.Email, rec.Company, rec.PasswordHash, now())
	if err != nil {
		return 0, fmt.Errorf("create recruiter: %w", err)
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetByID(ctx context.Context, id int64) (*models.Recruiter, error) {
	row := r.conn.QueryRow(ctx,
		`SELECT id, name, email, company, password_hash, created FROM recruiters WHERE id = ?`, id)

	return scanRecruiter(row)
}

func (r *SQLiteRepo) GetByEmail(ctx context.Context, email string) (*models.Recruiter, error) {
	row := r.conn.QueryRow(ctx,
		`SELECT id, name, email, company, password_hash, created FROM recruiters WHERE email = ?`, email)

	return scanRecruiter(row)
}

func scanRecruiter(row *sql.Row) (*models.Recruiter, error) {
	var rec models.Recruiter
	if err := row.Scan(&rec.ID, &rec.Name, &rec.Email, &rec.Company, &rec.PasswordHash, &rec.Created); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan recruiter: %w", err)
	}
	return &rec, nil
}
