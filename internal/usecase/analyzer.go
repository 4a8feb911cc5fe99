package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"job-copilot/internal/domain"
	"job-copilot/pkg/ai"
	"job-copilot/pkg/logger"
)

// Analyzer runs the analysis pipeline: guard → rate limit → cache →
// prompt → complete → extract → persist. The job-analysis and
// resume-comparison operations share everything except their task
// descriptor and the cache/persist/limit stages.
type Analyzer struct {
	jobs      JobsRepo
	analyses  AnalysisRepo
	limiter   Limiter
	completer Completer
}

func NewAnalyzer(jobs JobsRepo, analyses AnalysisRepo, limiter Limiter, completer Completer) *Analyzer {
	return &Analyzer{jobs: jobs, analyses: analyses, limiter: limiter, completer: completer}
}

// AnalyzeJob returns the stored analysis for the job post, computing and
// persisting it on first call. A cache hit and a fresh computation are
// indistinguishable to the caller.
func (a *Analyzer) AnalyzeJob(ctx context.Context, identity string, jobPostID uuid.UUID) (*domain.Analysis, error) {
	if a.limiter.Limited(identity) {
		return nil, domain.ErrRateLimited
	}

	job, err := a.loadOwnedJob(ctx, identity, jobPostID)
	if err != nil {
		return nil, err
	}

	if cached, err := a.analyses.Find(ctx, jobPostID, identity); err != nil {
		return nil, err
	} else if cached != nil {
		return cached, nil
	}

	obj, err := a.invoke(ctx, task{
		name:     "analyze_job",
		messages: ai.AnalyzeJobMessages(job.RawText),
		schema:   analysisSchema,
	})
	if err != nil {
		return nil, err
	}

	analysis := &domain.Analysis{
		JobPostID:      jobPostID,
		UserID:         identity,
		Summary:        optionalString(obj, "summary"),
		SkillsRequired: stringList(obj, "skills_required"),
		NiceToHave:     stringList(obj, "nice_to_have"),
		Checklist:      stringList(obj, "checklist"),
	}
	if err := a.analyses.Insert(ctx, analysis); err != nil {
		return nil, err
	}

	logger.Info().
		Str("job_post_id", jobPostID.String()).
		Int("skills_required", len(analysis.SkillsRequired)).
		Msg("job analysis stored")
	return analysis, nil
}

// CompareResume computes a resume gap analysis against the job post. The
// result is ephemeral: nothing is cached or persisted, and no rate limit
// applies to this operation.
func (a *Analyzer) CompareResume(ctx context.Context, identity string, jobPostID uuid.UUID, resumeText string) (*domain.Comparison, error) {
	if resumeText == "" {
		return nil, &domain.ValidationError{Reason: "jobPostId and resumeText are required"}
	}
	if len(resumeText) > domain.MaxTextLength {
		return nil, &domain.ValidationError{
			Reason: fmt.Sprintf("Resume text too long (max %d chars)", domain.MaxTextLength),
		}
	}

	job, err := a.loadOwnedJob(ctx, identity, jobPostID)
	if err != nil {
		return nil, err
	}

	obj, err := a.invoke(ctx, task{
		name:     "compare_resume",
		messages: ai.CompareResumeMessages(job.RawText, resumeText),
		schema:   comparisonSchema,
	})
	if err != nil {
		return nil, err
	}

	return &domain.Comparison{
		MissingSkills:    stringList(obj, "missing_skills"),
		LearningPlan:     stringList(obj, "learning_plan"),
		SuggestedBullets: stringList(obj, "suggested_bullets"),
	}, nil
}

// loadOwnedJob is the ownership guard plus the text bound. The repo query
// already filters by owner, so a foreign job surfaces as ErrNotFound here.
func (a *Analyzer) loadOwnedJob(ctx context.Context, identity string, jobPostID uuid.UUID) (*domain.JobPost, error) {
	job, err := a.jobs.GetForOwner(ctx, jobPostID, identity)
	if err != nil {
		return nil, err
	}
	if job.RawText == "" || len(job.RawText) > domain.MaxTextLength {
		return nil, &domain.ValidationError{
			Reason: fmt.Sprintf("Job description must be between 1 and %d characters.", domain.MaxTextLength),
		}
	}
	return job, nil
}

type task struct {
	name     string
	messages []ai.Message
	schema   *schema
}

// invoke is the shared completion leg: credential check before the prompt
// leaves the process, one provider call, then extraction of the untrusted
// output into a validated object.
func (a *Analyzer) invoke(ctx context.Context, t task) (map[string]interface{}, error) {
	if err := a.completer.Ready(); err != nil {
		return nil, err
	}

	content, err := a.completer.Complete(ctx, t.messages)
	if err != nil {
		logger.Warn().Err(err).Str("task", t.name).Msg("completion failed")
		return nil, err
	}

	obj, err := extractObject(content, t.schema)
	if err != nil {
		logger.Warn().Err(err).Str("task", t.name).Msg("model output rejected")
		return nil, err
	}
	return obj, nil
}
