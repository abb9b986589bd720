package ai

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/Srijnnn17/resume-genius/internal/prompts"
	"github.com/Srijnnn17/resume-genius/internal/resume"
)

//go:embed ats_schema.json
var atsSchemaJSON string

// notProvided substitutes for optional prompt fields the caller left
// empty; malformed input is coerced, never rejected.
const notProvided = "Not provided"

// EnhanceRequest asks for one bullet point to be rewritten.
type EnhanceRequest struct {
	Text     string `json:"text" validate:"required"`
	Position string `json:"position,omitempty"`
	Company  string `json:"company,omitempty"`
}

// ATSRequest asks for a resume-vs-job-description match score.
type ATSRequest struct {
	JobDescription string        `json:"jobDescription" validate:"required"`
	Resume         resume.Resume `json:"resume"`
}

// ATSResult is the structured match report.
type ATSResult struct {
	Score           float64  `json:"score"`
	MissingKeywords []string `json:"missingKeywords"`
	Suggestions     []string `json:"suggestions"`
}

// fallbackATSResult is returned when the model's response cannot be
// parsed into the expected shape. The request already succeeded at the
// transport level and a retry of a non-deterministic generation is not
// actionable, so the caller gets a usable placeholder instead of an error.
func fallbackATSResult() ATSResult {
	return ATSResult{
		Score:           50,
		MissingKeywords: []string{"Unable to parse response"},
		Suggestions:     []string{"Please try again"},
	}
}

// Service builds the two fixed prompt pairs and relays them upstream.
type Service struct {
	client Client
}

// NewService creates the AI proxy service.
func NewService(client Client) *Service {
	return &Service{client: client}
}

// Enhance rewrites free text as a single results-oriented, quantified,
// past-tense bullet point. The response is the model's text trimmed of
// surrounding whitespace; upstream failures propagate unchanged.
func (s *Service) Enhance(ctx context.Context, req EnhanceRequest) (string, error) {
	userPrompt := prompts.Format(prompts.MustGet("enhance_user"), map[string]string{
		"Text":     req.Text,
		"Position": orNotSpecified(req.Position),
		"Company":  orNotSpecified(req.Company),
	})

	text, err := s.client.GenerateContent(ctx, prompts.MustGet("enhance_system"), userPrompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// MatchATS scores the resume against a job description. The model's
// response is fence-stripped and parsed; anything that does not match
// the expected shape degrades to the fixed fallback payload.
func (s *Service) MatchATS(ctx context.Context, req ATSRequest) (ATSResult, error) {
	userPrompt := prompts.Format(prompts.MustGet("ats_user"), map[string]string{
		"JobDescription": req.JobDescription,
		"Name":           orNotProvided(req.Resume.PersonalInfo.FullName),
		"Summary":        orNotProvided(req.Resume.Summary),
		"Skills":         orNotProvided(strings.Join(req.Resume.Skills, ", ")),
		"Experience":     orNotProvided(experienceLines(req.Resume.Experiences)),
		"Education":      orNotProvided(educationLines(req.Resume.Education)),
	})

	text, err := s.client.GenerateContent(ctx, prompts.MustGet("ats_system"), userPrompt)
	if err != nil {
		return ATSResult{}, err
	}

	return parseATSResponse(text), nil
}

// parseATSResponse extracts the structured report from raw model text.
func parseATSResponse(text string) ATSResult {
	cleaned := CleanJSONBlock(text)

	check, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(atsSchemaJSON),
		gojsonschema.NewStringLoader(cleaned),
	)
	if err != nil || !check.Valid() {
		log.Printf("[ai] ATS response failed shape check, using fallback")
		return fallbackATSResult()
	}

	var result ATSResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		log.Printf("[ai] Failed to parse ATS JSON: %v", err)
		return fallbackATSResult()
	}
	if result.MissingKeywords == nil {
		result.MissingKeywords = []string{}
	}
	if result.Suggestions == nil {
		result.Suggestions = []string{}
	}
	return result
}

func experienceLines(exps []resume.Experience) string {
	var lines []string
	for _, exp := range exps {
		lines = append(lines, fmt.Sprintf("%s at %s: %s", exp.Position, exp.Company, exp.Description))
	}
	return strings.Join(lines, "\n")
}

func educationLines(edus []resume.Education) string {
	var lines []string
	for _, edu := range edus {
		lines = append(lines, fmt.Sprintf("%s in %s from %s", edu.Degree, edu.Field, edu.Institution))
	}
	return strings.Join(lines, "\n")
}

func orNotSpecified(s string) string {
	if s == "" {
		return "Not specified"
	}
	return s
}

func orNotProvided(s string) string {
	if s == "" {
		return notProvided
	}
	return s
}
