package insight

import (
	"testing"

	"github.com/failsight/failsight/internal/contract"
	"github.com/stretchr/testify/assert"
)

func TestNewGeminiGenerator(t *testing.T) {
	g := NewGeminiGenerator(&contract.Config{Model: "gemini-2.0-flash", UseVertexAI: true})
	assert.Equal(t, "gemini-2.0-flash", g.model)
	assert.True(t, g.useVertex)
}

func TestValidateEnvironmentGeminiAPI(t *testing.T) {
	g := NewGeminiGenerator(&contract.Config{Model: "gemini-2.0-flash"})

	t.Setenv(EnvGeminiAPIKey, "")
	assert.Error(t, g.ValidateEnvironment())

	t.Setenv(EnvGeminiAPIKey, "test-key")
	assert.NoError(t, g.ValidateEnvironment())
}

func TestValidateEnvironmentVertex(t *testing.T) {
	g := NewGeminiGenerator(&contract.Config{Model: "gemini-2.0-flash", UseVertexAI: true})

	t.Setenv(EnvCloudProject, "")
	t.Setenv(EnvCloudLocation, "")
	assert.Error(t, g.ValidateEnvironment())

	t.Setenv(EnvCloudProject, "test-project")
	assert.Error(t, g.ValidateEnvironment())

	t.Setenv(EnvCloudLocation, "us-central1")
	assert.NoError(t, g.ValidateEnvironment())

	// Vertex does not need the Gemini API key.
	t.Setenv(EnvGeminiAPIKey, "")
	assert.NoError(t, g.ValidateEnvironment())
}
