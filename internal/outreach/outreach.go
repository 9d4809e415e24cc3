// Package outreach drafts recruiting emails with Gemini. The generator
// never surfaces its errors as errors: the UI contract is a draft string
// either way, with a fixed sentinel when generation could not happen.
package outreach

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/bertagmachine/recruit-funnel/internal/models"
)

// ErrorDraft is the draft text returned whenever generation fails, from
// a missing key to a provider error.
const ErrorDraft = "Error generating content. Please check API settings."

const (
	defaultModel = "gemini-3-flash-preview"
	temperature  = 0.7
)

// DraftGenerator produces an outreach email draft for one athlete and
// one target college.
type DraftGenerator interface {
	GenerateDraft(ctx context.Context, athlete *models.Athlete, college *models.College) string
	Close() error
}

// GeminiGenerator implements DraftGenerator on the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a Gemini-backed draft generator.
func NewGeminiGenerator(ctx context.Context, apiKey string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiGenerator{client: client, model: defaultModel}, nil
}

// GenerateDraft asks Gemini for an initial outreach email. Any failure
// yields ErrorDraft rather than an error.
func (g *GeminiGenerator) GenerateDraft(ctx context.Context, athlete *models.Athlete, college *models.College) string {
	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(temperature)

	resp, err := model.GenerateContent(ctx, genai.Text(buildPrompt(athlete, college)))
	if err != nil {
		return ErrorDraft
	}

	text, err := extractText(resp)
	if err != nil || text == "" {
		return ErrorDraft
	}
	return text
}

func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}

func buildPrompt(athlete *models.Athlete, college *models.College) string {
	return fmt.Sprintf(`Draft a professional and compelling initial outreach email for a recruit.
Athlete: %s, Sport: %s, Position: %s, Class: %s, GPA: %s.
Target College: %s, Division: %s.
Bio: %s

Keep it concise, respectful, and include a call to action (asking for their camp schedule or to review highlights).`,
		athlete.Name, athlete.Sport, athlete.Position, athlete.Class, athlete.GPA,
		college.Name, college.Division,
		athlete.Bio)
}

// extractText pulls the text parts out of a Gemini response.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", fmt.Errorf("no text in response")
	}
	return out, nil
}

// UnconfiguredGenerator stands in when no Gemini API key is set. Every
// draft request returns the error sentinel.
type UnconfiguredGenerator struct{}

func (UnconfiguredGenerator) GenerateDraft(ctx context.Context, athlete *models.Athlete, college *models.College) string {
	return ErrorDraft
}

func (UnconfiguredGenerator) Close() error { return nil }

// New selects a generator: Gemini when an API key is present, otherwise
// the unconfigured stand-in.
func New(ctx context.Context, apiKey string) (DraftGenerator, error) {
	if apiKey == "" {
		return UnconfiguredGenerator{}, nil
	}
	return NewGeminiGenerator(ctx, apiKey)
}
