package migration

import (
	"context"
	"fmt"

	"github.com/jackc/pgconn"
	"go.uber.org/zap"
)

// Execer is satisfied by *pgxpool.Pool.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// Migration is one idempotent schema step.
type Migration struct {
	Name string
	SQL  string
}

var Migrations = []Migration{
	{
		Name: "create_resume_generations",
		SQL: `CREATE TABLE IF NOT EXISTS resume_generations (
			id          UUID PRIMARY KEY,
			request_id  TEXT NOT NULL DEFAULT '',
			name        TEXT NOT NULL DEFAULT '',
			filename    TEXT NOT NULL DEFAULT '',
			engine      TEXT NOT NULL,
			locale      TEXT NOT NULL,
			pages       INTEGER NOT NULL DEFAULT 0,
			bytes       INTEGER NOT NULL DEFAULT 0,
			duration_ms BIGINT NOT NULL DEFAULT 0,
			outcome     TEXT NOT NULL,
			error_code  TEXT NOT NULL DEFAULT '',
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	},
	{
		Name: "index_resume_generations_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS resume_generations_created_at_idx ON resume_generations (created_at)`,
	},
}

// RunMigrations executes every migration in order and stops at the first
// failure.
func RunMigrations(ctx context.Context, db Execer, log *zap.Logger) error {
	log.Info("starting database migrations")
	for _, m := range Migrations {
		if _, err := db.Exec(ctx, m.SQL); err != nil {
			log.Error("migration failed", zap.String("name", m.Name), zap.Error(err))
			return fmt.Errorf("migration %s: %w", m.Name, err)
		}
		log.Info("migration completed", zap.String("name", m.Name))
	}
	return nil
}
