package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"job-copilot/internal/domain"
)

type AnalysisRepo struct {
	pool *pgxpool.Pool
}

func NewAnalysisRepo(pool *pgxpool.Pool) *AnalysisRepo {
	return &AnalysisRepo{pool: pool}
}

// Find returns the stored analysis for (job post, owner), or nil when none
// exists yet. There is no invalidation: once a row is here it is served
// forever, until the owner purges their data.
func (r *AnalysisRepo) Find(ctx context.Context, jobPostID uuid.UUID, userID string) (*domain.Analysis, error) {
	a := &domain.Analysis{}
	var skills, nice, checklist []byte
	err := r.pool.QueryRow(ctx, `SELECT id, job_post_id, user_id, summary, skills_required, nice_to_have, checklist, created_at
		FROM ai_analysis
		WHERE job_post_id = $1 AND user_id = $2`,
		jobPostID, userID,
	).Scan(&a.ID, &a.JobPostID, &a.UserID, &a.Summary, &skills, &nice, &checklist, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &domain.StoreError{Err: err}
	}

	if err := scanLists(map[*[]string][]byte{
		&a.SkillsRequired: skills,
		&a.NiceToHave:     nice,
		&a.Checklist:      checklist,
	}); err != nil {
		return nil, &domain.StoreError{Err: err}
	}
	return a, nil
}

// Insert writes a freshly computed analysis. A duplicate insert (concurrent
// run past the cache check) violates the unique constraint and comes back
// as a StoreError with the store's message intact.
func (r *AnalysisRepo) Insert(ctx context.Context, a *domain.Analysis) error {
	a.ID = uuid.New()
	skills, err := json.Marshal(a.SkillsRequired)
	if err != nil {
		return &domain.StoreError{Err: err}
	}
	nice, err := json.Marshal(a.NiceToHave)
	if err != nil {
		return &domain.StoreError{Err: err}
	}
	checklist, err := json.Marshal(a.Checklist)
	if err != nil {
		return &domain.StoreError{Err: err}
	}

	err = r.pool.QueryRow(ctx, `INSERT INTO ai_analysis (id, job_post_id, user_id, summary, skills_required, nice_to_have, checklist)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at`,
		a.ID, a.JobPostID, a.UserID, a.Summary, skills, nice, checklist,
	).Scan(&a.CreatedAt)
	if err != nil {
		return &domain.StoreError{Err: err}
	}
	return nil
}

func scanLists(fields map[*[]string][]byte) error {
	for dst, raw := range fields {
		*dst = []string{}
		if len(raw) == 0 {
			continue
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return err
		}
		if *dst == nil {
			*dst = []string{}
		}
	}
	return nil
}
