package analyzer

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured
const DefaultModel = "gemini-2.5-flash"

// GeminiConfig configures the Gemini generator
type GeminiConfig struct {
	APIKey string
	Model  string
	// BaseURL overrides the Gemini API endpoint, mostly for tests
	BaseURL string
}

// GeminiGenerator calls the Gemini API with Google Search grounding enabled
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a generator from cfg. The API key is required.
func NewGeminiGenerator(ctx context.Context, cfg GeminiConfig) (*GeminiGenerator, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: API key is required")
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("gemini: failed to create client: %w", err)
	}

	return &GeminiGenerator{
		client: client,
		model:  model,
	}, nil
}

// Generate sends prompt to the model and collects its text and web citations
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (*Generation, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: gemini generate content: %w", ErrUpstreamUnavailable, err)
	}
	if resp == nil {
		return &Generation{GroundingChunks: []GroundingChunk{}}, nil
	}

	return &Generation{
		Text:            resp.Text(),
		GroundingChunks: groundingChunks(resp),
	}, nil
}

// groundingChunks returns the web citations of the first candidate in the order given
func groundingChunks(resp *genai.GenerateContentResponse) []GroundingChunk {
	chunks := []GroundingChunk{}
	if resp == nil || len(resp.Candidates) == 0 {
		return chunks
	}
	meta := resp.Candidates[0].GroundingMetadata
	if meta == nil {
		return chunks
	}
	for _, c := range meta.GroundingChunks {
		if c == nil || c.Web == nil {
			continue
		}
		chunks = append(chunks, GroundingChunk{
			Web: GroundingWeb{
				URI:   c.Web.URI,
				Title: c.Web.Title,
			},
		})
	}
	return chunks
}
