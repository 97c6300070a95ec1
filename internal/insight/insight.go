// Package insight calls the generative AI backend to turn the analysis
// summary into an operational report. It supports both the Vertex AI and
// the Gemini API backends, preferring Vertex when configured and falling
// back to the Gemini API on failure.
package insight

import (
	"context"
	"fmt"
	"os"

	"github.com/failsight/failsight/internal/contract"

	"google.golang.org/genai"
)

// Environment variables read for backend credentials.
const (
	EnvGeminiAPIKey  = "GEMINI_API_KEY"
	EnvCloudProject  = "GOOGLE_CLOUD_PROJECT"
	EnvCloudLocation = "GOOGLE_CLOUD_LOCATION"
)

// GeminiGenerator generates text with Google's generative models. One
// instance is valid for the life of a run; clients are created per call
// because the backend can switch mid-run on fallback.
type GeminiGenerator struct {
	model     string
	useVertex bool
}

var _ contract.TextGenerator = &GeminiGenerator{} // Compile-time check

// NewGeminiGenerator creates a generator from the run configuration.
func NewGeminiGenerator(cfg *contract.Config) *GeminiGenerator {
	return &GeminiGenerator{model: cfg.Model, useVertex: cfg.UseVertexAI}
}

// ValidateEnvironment checks that the credentials for the selected backend
// are present before any network call is made.
func (g *GeminiGenerator) ValidateEnvironment() error {
	if g.useVertex {
		if os.Getenv(EnvCloudProject) == "" || os.Getenv(EnvCloudLocation) == "" {
			return fmt.Errorf("vertex ai requires %s and %s to be set", EnvCloudProject, EnvCloudLocation)
		}
		return nil
	}
	if os.Getenv(EnvGeminiAPIKey) == "" {
		return fmt.Errorf("gemini api requires %s to be set", EnvGeminiAPIKey)
	}
	return nil
}

// GenerateInsight implements the TextGenerator interface. When Vertex AI is
// preferred but fails, the call is retried once against the Gemini API.
func (g *GeminiGenerator) GenerateInsight(ctx context.Context, prompt string) (string, error) {
	if g.useVertex {
		text, err := g.generate(ctx, prompt, &genai.ClientConfig{
			Backend:  genai.BackendVertexAI,
			Project:  os.Getenv(EnvCloudProject),
			Location: os.Getenv(EnvCloudLocation),
		})
		if err == nil {
			return text, nil
		}
		contract.LogWarn("vertex ai backend failed, falling back to gemini api", err)
	}
	return g.generate(ctx, prompt, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  os.Getenv(EnvGeminiAPIKey),
	})
}

// generate runs a single generate-content call against one backend.
func (g *GeminiGenerator) generate(ctx context.Context, prompt string, cc *genai.ClientConfig) (string, error) {
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return "", fmt.Errorf("create genai client: %w", err)
	}
	resp, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("model %s returned an empty response", g.model)
	}
	return text, nil
}
