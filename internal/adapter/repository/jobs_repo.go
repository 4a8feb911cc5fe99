package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"job-copilot/internal/domain"
)

type JobsRepo struct {
	pool *pgxpool.Pool
}

func NewJobsRepo(pool *pgxpool.Pool) *JobsRepo {
	return &JobsRepo{pool: pool}
}

func (r *JobsRepo) Insert(ctx context.Context, j *domain.JobPost) error {
	j.ID = uuid.New()
	err := r.pool.QueryRow(ctx, `INSERT INTO job_posts (id, user_id, title, company, url, raw_text)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at`,
		j.ID, j.UserID, j.Title, j.Company, j.URL, j.RawText,
	).Scan(&j.CreatedAt)
	if err != nil {
		return &domain.StoreError{Err: err}
	}
	return nil
}

// GetForOwner filters by id AND user_id in one predicate pair so a job
// owned by someone else is indistinguishable from one that does not exist.
func (r *JobsRepo) GetForOwner(ctx context.Context, id uuid.UUID, userID string) (*domain.JobPost, error) {
	j := &domain.JobPost{}
	err := r.pool.QueryRow(ctx, `SELECT id, user_id, title, company, url, raw_text, created_at
		FROM job_posts
		WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&j.ID, &j.UserID, &j.Title, &j.Company, &j.URL, &j.RawText, &j.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, &domain.StoreError{Err: err}
	}
	return j, nil
}

func (r *JobsRepo) ListForOwner(ctx context.Context, userID string) ([]domain.JobPostSummary, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, title, company, created_at
		FROM job_posts
		WHERE user_id = $1
		ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, &domain.StoreError{Err: err}
	}
	defer rows.Close()

	out := []domain.JobPostSummary{}
	for rows.Next() {
		var s domain.JobPostSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.Company, &s.CreatedAt); err != nil {
			return nil, &domain.StoreError{Err: err}
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StoreError{Err: err}
	}
	return out, nil
}

// DeleteAllForOwner removes every job post the user owns; analyses go with
// them via the FK cascade.
func (r *JobsRepo) DeleteAllForOwner(ctx context.Context, userID string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM job_posts WHERE user_id = $1`, userID); err != nil {
		return &domain.StoreError{Err: err}
	}
	return nil
}
