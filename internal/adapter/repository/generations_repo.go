package repository

import (
	"context"

	"resume-pdf/internal/domain"

	"github.com/jackc/pgconn"
)

// Execer is the slice of pgxpool.Pool the repository needs.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type GenerationsRepo struct {
	db Execer
}

// NewGenerationsRepo accepts a nil db, in which case Save is a no-op.
func NewGenerationsRepo(db Execer) *GenerationsRepo {
	return &GenerationsRepo{db: db}
}

const insertGeneration = `INSERT INTO resume_generations
	(id, request_id, name, filename, engine, locale, pages, bytes, duration_ms, outcome, error_code, created_at)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	ON CONFLICT (id) DO NOTHING`

func (r *GenerationsRepo) Save(ctx context.Context, g *domain.Generation) error {
	if r == nil || r.db == nil {
		return nil
	}
	_, err := r.db.Exec(ctx, insertGeneration,
		g.ID, g.RequestID, g.Name, g.Filename, g.Engine, g.Locale,
		g.Pages, g.Bytes, g.Duration.Milliseconds(), g.Outcome, g.ErrorCode, g.CreatedAt)
	return err
}
