package usecase

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"job-copilot/internal/domain"
)

// The model's output is free text of adversarial quality: it may wrap the
// JSON in markdown fences, omit keys, or ignore the instructions entirely.
// Extraction either produces an object that passes the task schema or
// fails; nothing is partially accepted.

var (
	openFence  = regexp.MustCompile("(?i)^```json\\s*")
	closeFence = regexp.MustCompile("```$")
)

type schema struct {
	compiled *gojsonschema.Schema
}

func mustSchema(raw string) *schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(raw))
	if err != nil {
		panic(err)
	}
	return &schema{compiled: s}
}

// All fields optional: a missing key projects to its default. Present
// fields must have the right shape or the whole response is rejected.
var analysisSchema = mustSchema(`{
	"type": "object",
	"properties": {
		"summary": {"type": "string"},
		"skills_required": {"type": "array", "items": {"type": "string"}},
		"nice_to_have": {"type": "array", "items": {"type": "string"}},
		"checklist": {"type": "array", "items": {"type": "string"}}
	}
}`)

var comparisonSchema = mustSchema(`{
	"type": "object",
	"properties": {
		"missing_skills": {"type": "array", "items": {"type": "string"}},
		"learning_plan": {"type": "array", "items": {"type": "string"}},
		"suggested_bullets": {"type": "array", "items": {"type": "string"}}
	}
}`)

// extractObject strips an optional markdown fence, parses the remainder as
// a JSON object and validates it against the task schema.
func extractObject(content string, s *schema) (map[string]interface{}, error) {
	text := strings.TrimSpace(content)
	text = openFence.ReplaceAllString(text, "")
	text = closeFence.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)

	if text == "" {
		return nil, &domain.FormatError{Err: errors.New("empty completion content")}
	}

	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(text), &obj); err != nil {
		return nil, &domain.FormatError{Err: err}
	}
	if obj == nil {
		// "null" decodes into a nil map without error
		return nil, &domain.FormatError{Err: errors.New("completion content is not a JSON object")}
	}

	result, err := s.compiled.Validate(gojsonschema.NewGoLoader(obj))
	if err != nil {
		return nil, &domain.FormatError{Err: err}
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, &domain.FormatError{Err: fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))}
	}
	return obj, nil
}

// stringList projects an expected array field. A missing key becomes an
// empty slice, never nil, so "model omitted the key" and "model reported
// nothing" collapse into the same value.
func stringList(obj map[string]interface{}, key string) []string {
	out := []string{}
	items, ok := obj[key].([]interface{})
	if !ok {
		return out
	}
	for _, it := range items {
		if s, ok := it.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// optionalString has no default: a missing key stays nil. The summary field
// keeps this asymmetry with the array fields.
func optionalString(obj map[string]interface{}, key string) *string {
	if s, ok := obj[key].(string); ok {
		return &s
	}
	return nil
}
