package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/rsilvagit/jobfit/internal/model"
)

const defaultGeminiModel = "gemini-2.5-flash"

const scoringPrompt = `You compare a resume with a job posting.
Reply with a single JSON object and nothing else, shaped as:
{"job_context":{"title":string,"company":string},
 "analysis":{"overall_score":number between 0 and 100,"summary":string,
  "matched_keywords":[string],"missing_keywords":[string],"recommendations":[string]}}

Job posting:
`

// contentGenerator is the slice of the genai models service Gemini uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini scores resumes with a Gemini model instead of the scoring service.
type Gemini struct {
	models    contentGenerator
	modelName string
}

func NewGemini(ctx context.Context, apiKey, modelName string) (*Gemini, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return newGemini(client.Models, modelName), nil
}

func newGemini(models contentGenerator, modelName string) *Gemini {
	if modelName = strings.TrimSpace(modelName); modelName == "" {
		modelName = defaultGeminiModel
	}
	return &Gemini{models: models, modelName: modelName}
}

func (g *Gemini) Analyze(ctx context.Context, resume model.Resume, posting model.JobPosting) (Result, error) {
	jobData, err := json.Marshal(posting)
	if err != nil {
		return Result{}, fmt.Errorf("analysis: encoding posting: %w", err)
	}

	contents := []*genai.Content{{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			{Text: scoringPrompt + string(jobData)},
			{InlineData: &genai.Blob{MIMEType: resume.ContentType, Data: resume.Data}},
		},
	}}
	cfg := &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}

	resp, err := g.models.GenerateContent(ctx, g.modelName, contents, cfg)
	if err != nil {
		return Result{}, fmt.Errorf("generate content: %w", err)
	}

	var b strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			b.WriteString(part.Text)
		}
	}
	out := stripFence(strings.TrimSpace(b.String()))
	if out == "" {
		return Result{}, errors.New("gemini api returned empty response")
	}
	return ParseResult([]byte(out))
}

// stripFence removes a markdown code fence some models wrap JSON replies in.
func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
