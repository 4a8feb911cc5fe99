package ai

import "fmt"

// Prompt builders. Two messages per task, rendered deterministically. The
// embedded text gets no sanitization beyond the upstream length bound, so a
// job description can try to smuggle instructions in; that risk is accepted
// at this trust level.

const analyzeSystem = "You are an assistant that extracts job requirements."

const analyzeUserTemplate = "Analyze this job description. Return JSON ONLY with keys: " +
	"summary (string), skills_required (string[]), nice_to_have (string[]), checklist (string[]). " +
	"Do not include any other text.\n\n%s"

// AnalyzeJobMessages builds the extraction prompt for a job description.
func AnalyzeJobMessages(jobText string) []Message {
	return []Message{
		{Role: "system", Content: analyzeSystem},
		{Role: "user", Content: fmt.Sprintf(analyzeUserTemplate, jobText)},
	}
}

const compareSystem = "You compare resumes to job descriptions."

const compareUserTemplate = "Job description:\n%s\n\nResume:\n%s\n\n" +
	"Return JSON ONLY with keys: missing_skills (string[]), learning_plan (string[]), suggested_bullets (string[])."

// CompareResumeMessages builds the gap-analysis prompt for a resume against
// a job description.
func CompareResumeMessages(jobText, resumeText string) []Message {
	return []Message{
		{Role: "system", Content: compareSystem},
		{Role: "user", Content: fmt.Sprintf(compareUserTemplate, jobText, resumeText)},
	}
}
