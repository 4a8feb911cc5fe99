package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxTextLength bounds job descriptions and resume text before any
// completion call is made.
const MaxTextLength = 10000

type JobPost struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Company   string    `json:"company"`
	URL       *string   `json:"url,omitempty"`
	RawText   string    `json:"raw_text"`
	CreatedAt time.Time `json:"created_at"`
}

// JobPostSummary is the listing projection (no raw_text).
type JobPostSummary struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Company   string    `json:"company"`
	CreatedAt time.Time `json:"created_at"`
}

// Analysis is the stored result of analyzing a job post. At most one row
// exists per (job_post_id, user_id); absence means "not yet analyzed".
// Summary is a pointer: when the model omits it the column stays NULL
// instead of being coerced to an empty string. The array fields are always
// non-nil.
type Analysis struct {
	ID             uuid.UUID `json:"id"`
	JobPostID      uuid.UUID `json:"job_post_id"`
	UserID         string    `json:"user_id"`
	Summary        *string   `json:"summary"`
	SkillsRequired []string  `json:"skills_required"`
	NiceToHave     []string  `json:"nice_to_have"`
	Checklist      []string  `json:"checklist"`
	CreatedAt      time.Time `json:"created_at"`
}

// Comparison is the resume gap analysis. Never persisted; computed fresh on
// every call.
type Comparison struct {
	MissingSkills    []string `json:"missing_skills"`
	LearningPlan     []string `json:"learning_plan"`
	SuggestedBullets []string `json:"suggested_bullets"`
}
