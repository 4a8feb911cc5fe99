package migration

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"

	"job-copilot/pkg/logger"
)

// Migration represents a database migration
type Migration struct {
	Name string
	Up   func(ctx context.Context, pool *pgxpool.Pool) error
}

// RunMigrations executes all necessary database migrations on startup.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	migrations := []Migration{
		{Name: "create_job_posts", Up: createJobPosts},
		{Name: "create_ai_analysis", Up: createAIAnalysis},
	}

	for _, m := range migrations {
		if err := m.Up(ctx, pool); err != nil {
			logger.Error().Err(err).Str("name", m.Name).Msg("migration failed")
			return err
		}
		logger.Info().Str("name", m.Name).Msg("migration completed")
	}
	return nil
}

func createJobPosts(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS job_posts (
			id UUID PRIMARY KEY,
			user_id TEXT NOT NULL,
			title TEXT NOT NULL,
			company TEXT NOT NULL,
			url TEXT,
			raw_text TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`); err != nil {
		return err
	}
	_, err := pool.Exec(ctx, `
		CREATE INDEX IF NOT EXISTS idx_job_posts_user_created
			ON job_posts (user_id, created_at DESC)
	`)
	return err
}

func createAIAnalysis(ctx context.Context, pool *pgxpool.Pool) error {
	// The unique constraint on (job_post_id, user_id) is the only guard
	// against two concurrent pipeline runs inserting a duplicate analysis;
	// the losing writer gets the store error back.
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS ai_analysis (
			id UUID PRIMARY KEY,
			job_post_id UUID NOT NULL REFERENCES job_posts(id) ON DELETE CASCADE,
			user_id TEXT NOT NULL,
			summary TEXT,
			skills_required JSONB NOT NULL DEFAULT '[]',
			nice_to_have JSONB NOT NULL DEFAULT '[]',
			checklist JSONB NOT NULL DEFAULT '[]',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			CONSTRAINT ai_analysis_job_owner_key UNIQUE (job_post_id, user_id)
		)
	`)
	return err
}
