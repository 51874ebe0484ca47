package llm

import (
	"context"

	"github.com/terramatch-studio/terramatch-engine/pkg/models"
)

// MockExtractionClient is a configurable mock for testing extraction flows.
// Set the function field to control behavior in tests.
type MockExtractionClient struct {
	// ParseQuoteFunc is called when ParseQuote is invoked.
	// If nil, returns an empty candidate list and nil error.
	ParseQuoteFunc func(ctx context.Context, text string) ([]models.TaskCandidate, error)

	// Call tracking for verification
	ParseQuoteCalls int
}

// ParseQuote implements ExtractionClient.
func (m *MockExtractionClient) ParseQuote(ctx context.Context, text string) ([]models.TaskCandidate, error) {
	m.ParseQuoteCalls++
	if m.ParseQuoteFunc != nil {
		return m.ParseQuoteFunc(ctx, text)
	}
	return []models.TaskCandidate{}, nil
}

// MockVisualizationClient is a configurable mock for testing rendering flows.
type MockVisualizationClient struct {
	// GenerateVisualizationFunc is called when GenerateVisualization is
	// invoked. If nil, returns "" and nil error (a soft miss).
	GenerateVisualizationFunc func(ctx context.Context, sitePhoto string, textures []string, instruction string) (string, error)

	// Call tracking for verification
	GenerateVisualizationCalls int
	// LastTextures records the texture list of the most recent call.
	LastTextures []string
	// LastInstruction records the instruction of the most recent call.
	LastInstruction string
}

// GenerateVisualization implements VisualizationClient.
func (m *MockVisualizationClient) GenerateVisualization(ctx context.Context, sitePhoto string, textures []string, instruction string) (string, error) {
	m.GenerateVisualizationCalls++
	m.LastTextures = textures
	m.LastInstruction = instruction
	if m.GenerateVisualizationFunc != nil {
		return m.GenerateVisualizationFunc(ctx, sitePhoto, textures, instruction)
	}
	return "", nil
}

// Compile-time interface checks.
var (
	_ ExtractionClient    = (*MockExtractionClient)(nil)
	_ VisualizationClient = (*MockVisualizationClient)(nil)
)
