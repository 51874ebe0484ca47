package llm

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/terramatch-studio/terramatch-engine/pkg/config"
)

// NewExtractionClient creates the extraction client for the configured
// provider.
func NewExtractionClient(cfg *config.AIConfig, logger *zap.Logger) (ExtractionClient, error) {
	switch cfg.Provider {
	case "openai":
		return NewOpenAIClient(cfg, logger), nil
	case "anthropic":
		return NewAnthropicClient(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unknown ai provider %q", cfg.Provider)
	}
}

// NewVisualizationClient creates the image rendering client. Visualization
// always goes through the OpenAI-compatible multimodal endpoint; Anthropic
// models do not generate images.
func NewVisualizationClient(cfg *config.AIConfig, logger *zap.Logger) VisualizationClient {
	return NewOpenAIClient(cfg, logger)
}
