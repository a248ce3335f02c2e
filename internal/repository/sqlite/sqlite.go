package sqlite

import (
	"log/slog"
	"time"

	"github.com/garnizeh/offerdesk/internal/db"
	"github.com/garnizeh/offerdesk/pkg/repository"
)

// SQLiteRepo implements repository interfaces using the internal DB wrapper.
type SQLiteRepo struct {
	conn   *db.DB
	logger *slog.Logger
}

// Ensure SQLiteRepo implements the public interfaces.
var _ repository.RecruiterRepo = (*SQLiteRepo)(nil)
var _ repository.OfferRepo = (*SQLiteRepo)(nil)
var _ repository.ApplicantRepo = (*SQLiteRepo)(nil)
var _ repository.InterviewRepo = (*SQLiteRepo)(nil)

func New(conn *db.DB, logger *slog.Logger) *SQLiteRepo {
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLiteRepo{conn: conn, logger: logger}
}

func now() int64 {
	return time.Now().UTC().UnixMilli()
}
