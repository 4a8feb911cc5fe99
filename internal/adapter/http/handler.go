package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"job-copilot/internal/domain"
	"job-copilot/internal/usecase"
)

// JobsStore is what the CRUD handlers need from the job post repository.
type JobsStore interface {
	Insert(ctx context.Context, j *domain.JobPost) error
	GetForOwner(ctx context.Context, id uuid.UUID, userID string) (*domain.JobPost, error)
	ListForOwner(ctx context.Context, userID string) ([]domain.JobPostSummary, error)
	DeleteAllForOwner(ctx context.Context, userID string) error
}

// AnalysisStore is the read side used by the job detail view.
type AnalysisStore interface {
	Find(ctx context.Context, jobPostID uuid.UUID, userID string) (*domain.Analysis, error)
}

type Handler struct {
	analyzer *usecase.Analyzer
	jobs     JobsStore
	analyses AnalysisStore
}

func NewHandler(analyzer *usecase.Analyzer, jobs JobsStore, analyses AnalysisStore) *Handler {
	return &Handler{analyzer: analyzer, jobs: jobs, analyses: analyses}
}

// Register mounts all routes. Everything under /api requires a resolved
// identity.
func (h *Handler) Register(app *fiber.App, resolver IdentityResolver) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api", AuthRequired(resolver))
	api.Post("/analyze-job", h.AnalyzeJob)
	api.Post("/compare-resume", h.CompareResume)
	api.Post("/jobs", h.CreateJob)
	api.Get("/jobs", h.ListJobs)
	api.Get("/jobs/:id", h.GetJob)
	api.Delete("/data", h.PurgeData)
}

type analyzeReq struct {
	JobPostID string `json:"jobPostId"`
}

func (h *Handler) AnalyzeJob(c *fiber.Ctx) error {
	var req analyzeReq
	if err := c.BodyParser(&req); err != nil || req.JobPostID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "jobPostId is required"})
	}

	jobID, err := uuid.Parse(req.JobPostID)
	if err != nil {
		// an unparsable id can't match any row; same surface as absence
		return respondError(c, domain.ErrNotFound)
	}

	analysis, err := h.analyzer.AnalyzeJob(c.Context(), identityFrom(c), jobID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"analysis": analysis})
}

type compareReq struct {
	JobPostID  string `json:"jobPostId"`
	ResumeText string `json:"resumeText"`
}

func (h *Handler) CompareResume(c *fiber.Ctx) error {
	var req compareReq
	if err := c.BodyParser(&req); err != nil || req.JobPostID == "" || req.ResumeText == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "jobPostId and resumeText are required"})
	}

	jobID, err := uuid.Parse(req.JobPostID)
	if err != nil {
		return respondError(c, domain.ErrNotFound)
	}

	comparison, err := h.analyzer.CompareResume(c.Context(), identityFrom(c), jobID, req.ResumeText)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"comparison": comparison})
}

type createJobReq struct {
	Title   string `json:"title"`
	Company string `json:"company"`
	URL     string `json:"url"`
	RawText string `json:"rawText"`
}

func (h *Handler) CreateJob(c *fiber.Ctx) error {
	var req createJobReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	if req.Title == "" || req.Company == "" || req.RawText == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title, company and rawText are required"})
	}
	if len(req.RawText) > domain.MaxTextLength {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Job description must be between 1 and %d characters.", domain.MaxTextLength),
		})
	}

	job := &domain.JobPost{
		UserID:  identityFrom(c),
		Title:   req.Title,
		Company: req.Company,
		RawText: req.RawText,
	}
	if req.URL != "" {
		job.URL = &req.URL
	}
	if err := h.jobs.Insert(c.Context(), job); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"job": job})
}

func (h *Handler) ListJobs(c *fiber.Ctx) error {
	jobs, err := h.jobs.ListForOwner(c.Context(), identityFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"jobs": jobs})
}

func (h *Handler) GetJob(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, domain.ErrNotFound)
	}

	identity := identityFrom(c)
	job, err := h.jobs.GetForOwner(c.Context(), jobID, identity)
	if err != nil {
		return respondError(c, err)
	}
	analysis, err := h.analyses.Find(c.Context(), jobID, identity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"job": job, "analysis": analysis})
}

// PurgeData is the owner-initiated bulk deletion: all job posts and, via
// cascade, all stored analyses.
func (h *Handler) PurgeData(c *fiber.Ctx) error {
	if err := h.jobs.DeleteAllForOwner(c.Context(), identityFrom(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
