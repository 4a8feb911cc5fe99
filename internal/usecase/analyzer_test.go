package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"job-copilot/internal/domain"
	"job-copilot/pkg/ai"
)

type fakeJobs struct {
	jobs map[uuid.UUID]*domain.JobPost
}

func (f *fakeJobs) GetForOwner(_ context.Context, id uuid.UUID, userID string) (*domain.JobPost, error) {
	j, ok := f.jobs[id]
	if !ok || j.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return j, nil
}

type fakeAnalyses struct {
	stored    map[uuid.UUID]*domain.Analysis // by job post id
	insertErr error
}

func (f *fakeAnalyses) Find(_ context.Context, jobPostID uuid.UUID, userID string) (*domain.Analysis, error) {
	a, ok := f.stored[jobPostID]
	if !ok || a.UserID != userID {
		return nil, nil
	}
	return a, nil
}

func (f *fakeAnalyses) Insert(_ context.Context, a *domain.Analysis) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	a.ID = uuid.New()
	f.stored[a.JobPostID] = a
	return nil
}

type fakeCompleter struct {
	content  string
	err      error
	readyErr error
	calls    int
	lastMsgs []ai.Message
}

func (f *fakeCompleter) Ready() error { return f.readyErr }

func (f *fakeCompleter) Complete(_ context.Context, messages []ai.Message) (string, error) {
	f.calls++
	f.lastMsgs = messages
	return f.content, f.err
}

type fakeLimiter struct{ limited bool }

func (f *fakeLimiter) Limited(string) bool { return f.limited }

type fixture struct {
	analyzer  *Analyzer
	jobs      *fakeJobs
	analyses  *fakeAnalyses
	completer *fakeCompleter
	limiter   *fakeLimiter
	jobID     uuid.UUID
}

func newFixture(rawText string) *fixture {
	jobID := uuid.New()
	jobs := &fakeJobs{jobs: map[uuid.UUID]*domain.JobPost{
		jobID: {ID: jobID, UserID: "user-1", Title: "Backend Engineer", Company: "Acme", RawText: rawText},
	}}
	analyses := &fakeAnalyses{stored: map[uuid.UUID]*domain.Analysis{}}
	completer := &fakeCompleter{content: `{"summary":"builds APIs","skills_required":["go"],"nice_to_have":["k8s"],"checklist":["apply"]}`}
	limiter := &fakeLimiter{}
	return &fixture{
		analyzer:  NewAnalyzer(jobs, analyses, limiter, completer),
		jobs:      jobs,
		analyses:  analyses,
		completer: completer,
		limiter:   limiter,
		jobID:     jobID,
	}
}

func TestAnalyzeJob(t *testing.T) {
	ctx := context.Background()

	t.Run("computes and persists on first call", func(t *testing.T) {
		f := newFixture("a job description")
		a, err := f.analyzer.AnalyzeJob(ctx, "user-1", f.jobID)
		require.NoError(t, err)

		require.NotNil(t, a.Summary)
		assert.Equal(t, "builds APIs", *a.Summary)
		assert.Equal(t, []string{"go"}, a.SkillsRequired)
		assert.Equal(t, 1, f.completer.calls)
		assert.Len(t, f.analyses.stored, 1)
	})

	t.Run("second call serves the cache without a provider call", func(t *testing.T) {
		f := newFixture("a job description")
		first, err := f.analyzer.AnalyzeJob(ctx, "user-1", f.jobID)
		require.NoError(t, err)
		second, err := f.analyzer.AnalyzeJob(ctx, "user-1", f.jobID)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, 1, f.completer.calls)
	})

	t.Run("rate limited before anything else", func(t *testing.T) {
		f := newFixture("a job description")
		f.limiter.limited = true

		_, err := f.analyzer.AnalyzeJob(ctx, "user-1", f.jobID)
		assert.ErrorIs(t, err, domain.ErrRateLimited)
		assert.Equal(t, 0, f.completer.calls)
	})

	t.Run("foreign job reads as not found", func(t *testing.T) {
		f := newFixture("a job description")
		_, err := f.analyzer.AnalyzeJob(ctx, "user-2", f.jobID)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		_, absentErr := f.analyzer.AnalyzeJob(ctx, "user-1", uuid.New())
		assert.Equal(t, absentErr, err, "cross-owner and absent cases are identical")
		assert.Equal(t, 0, f.completer.calls)
	})

	t.Run("text bounds checked before the provider call", func(t *testing.T) {
		var valErr *domain.ValidationError

		f := newFixture(strings.Repeat("x", domain.MaxTextLength+1))
		_, err := f.analyzer.AnalyzeJob(ctx, "user-1", f.jobID)
		require.ErrorAs(t, err, &valErr)
		assert.Equal(t, 0, f.completer.calls)

		f = newFixture("")
		_, err = f.analyzer.AnalyzeJob(ctx, "user-1", f.jobID)
		assert.ErrorAs(t, err, &valErr)

		f = newFixture(strings.Repeat("x", domain.MaxTextLength))
		_, err = f.analyzer.AnalyzeJob(ctx, "user-1", f.jobID)
		assert.NoError(t, err, "exactly at the bound is accepted")
	})

	t.Run("missing credential fails before the prompt is sent", func(t *testing.T) {
		f := newFixture("a job description")
		f.completer.readyErr = &domain.ConfigurationError{Reason: "missing GROQ_API_KEY environment variable"}

		_, err := f.analyzer.AnalyzeJob(ctx, "user-1", f.jobID)
		var cfgErr *domain.ConfigurationError
		assert.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, 0, f.completer.calls)
	})

	t.Run("unparsable output persists nothing", func(t *testing.T) {
		f := newFixture("a job description")
		f.completer.content = "Sorry, I can't help with that."

		_, err := f.analyzer.AnalyzeJob(ctx, "user-1", f.jobID)
		var formatErr *domain.FormatError
		assert.ErrorAs(t, err, &formatErr)
		assert.Empty(t, f.analyses.stored)
	})

	t.Run("omitted keys default to empty, summary stays nil", func(t *testing.T) {
		f := newFixture("a job description")
		f.completer.content = `{"skills_required":["go"]}`

		a, err := f.analyzer.AnalyzeJob(ctx, "user-1", f.jobID)
		require.NoError(t, err)
		assert.Nil(t, a.Summary)
		assert.Equal(t, []string{}, a.NiceToHave)
		assert.Equal(t, []string{}, a.Checklist)
	})

	t.Run("provider failure propagates", func(t *testing.T) {
		f := newFixture("a job description")
		f.completer.err = &domain.UpstreamError{StatusCode: 503, Body: "overloaded"}

		_, err := f.analyzer.AnalyzeJob(ctx, "user-1", f.jobID)
		var upstream *domain.UpstreamError
		require.ErrorAs(t, err, &upstream)
		assert.Equal(t, 503, upstream.StatusCode)
		assert.Empty(t, f.analyses.stored)
	})

	t.Run("losing a concurrent insert surfaces the store error", func(t *testing.T) {
		f := newFixture("a job description")
		f.analyses.insertErr = &domain.StoreError{Err: assert.AnError}

		_, err := f.analyzer.AnalyzeJob(ctx, "user-1", f.jobID)
		var storeErr *domain.StoreError
		assert.ErrorAs(t, err, &storeErr)
	})
}

func TestCompareResume(t *testing.T) {
	ctx := context.Background()

	t.Run("fresh comparison each call, never persisted", func(t *testing.T) {
		f := newFixture("a job description")
		f.completer.content = `{"missing_skills":["k8s"],"learning_plan":["learn k8s"],"suggested_bullets":["Shipped Go services"]}`

		c, err := f.analyzer.CompareResume(ctx, "user-1", f.jobID, "my resume")
		require.NoError(t, err)
		assert.Equal(t, []string{"k8s"}, c.MissingSkills)

		_, err = f.analyzer.CompareResume(ctx, "user-1", f.jobID, "my resume")
		require.NoError(t, err)
		assert.Equal(t, 2, f.completer.calls, "no cache for comparisons")
		assert.Empty(t, f.analyses.stored)
	})

	t.Run("prompt carries both texts", func(t *testing.T) {
		f := newFixture("JOB TEXT HERE")
		f.completer.content = `{}`

		_, err := f.analyzer.CompareResume(ctx, "user-1", f.jobID, "RESUME TEXT HERE")
		require.NoError(t, err)
		require.Len(t, f.completer.lastMsgs, 2)
		assert.Contains(t, f.completer.lastMsgs[1].Content, "JOB TEXT HERE")
		assert.Contains(t, f.completer.lastMsgs[1].Content, "RESUME TEXT HERE")
	})

	t.Run("resume bound enforced before the provider call", func(t *testing.T) {
		f := newFixture("a job description")
		var valErr *domain.ValidationError

		_, err := f.analyzer.CompareResume(ctx, "user-1", f.jobID, strings.Repeat("x", domain.MaxTextLength+1))
		require.ErrorAs(t, err, &valErr)
		_, err = f.analyzer.CompareResume(ctx, "user-1", f.jobID, "")
		require.ErrorAs(t, err, &valErr)
		assert.Equal(t, 0, f.completer.calls)
	})

	t.Run("no rate limit on comparisons", func(t *testing.T) {
		f := newFixture("a job description")
		f.completer.content = `{}`
		f.limiter.limited = true

		_, err := f.analyzer.CompareResume(ctx, "user-1", f.jobID, "my resume")
		assert.NoError(t, err)
	})

	t.Run("empty object projects to empty slices", func(t *testing.T) {
		f := newFixture("a job description")
		f.completer.content = `{}`

		c, err := f.analyzer.CompareResume(ctx, "user-1", f.jobID, "my resume")
		require.NoError(t, err)
		assert.Equal(t, []string{}, c.MissingSkills)
		assert.Equal(t, []string{}, c.LearningPlan)
		assert.Equal(t, []string{}, c.SuggestedBullets)
	})
}
