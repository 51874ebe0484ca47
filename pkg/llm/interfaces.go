// Package llm provides the generative AI clients for terramatch-engine:
// quote extraction (text in, structured task candidates out) and
// visualization rendering (site photo plus product textures in, composite
// image out).
package llm

import (
	"context"

	"github.com/terramatch-studio/terramatch-engine/pkg/models"
)

// ExtractionClient parses free-text quote content into task candidates.
// Use this interface for dependency injection to enable mocking in tests.
type ExtractionClient interface {
	// ParseQuote extracts structured line items from a landscaping quote.
	// Absent fields on a candidate are empty strings.
	ParseQuote(ctx context.Context, text string) ([]models.TaskCandidate, error)
}

// VisualizationClient renders a composite image from a site photo and
// product texture images.
type VisualizationClient interface {
	// GenerateVisualization sends the site photo, the texture images and the
	// placement instruction to the image model. It returns the generated
	// image as a data URL, or "" with a nil error when the model produced no
	// image (a soft miss, distinct from a hard failure).
	GenerateVisualization(ctx context.Context, sitePhoto string, textures []string, instruction string) (string, error)
}

// Compile-time interface checks.
var (
	_ ExtractionClient    = (*OpenAIClient)(nil)
	_ ExtractionClient    = (*AnthropicClient)(nil)
	_ VisualizationClient = (*OpenAIClient)(nil)
)
