package llm

import (
	"context"
	"time"

	"github.com/liushuangls/go-anthropic/v2"
	"go.uber.org/zap"

	"github.com/terramatch-studio/terramatch-engine/pkg/config"
	"github.com/terramatch-studio/terramatch-engine/pkg/logging"
	"github.com/terramatch-studio/terramatch-engine/pkg/models"
	"github.com/terramatch-studio/terramatch-engine/pkg/prompts"
)

const anthropicMaxTokens = 4096

// AnthropicClient is the alternate quote extraction provider, selected with
// ai.provider: anthropic.
type AnthropicClient struct {
	client *anthropic.Client
	cfg    *config.AIConfig
	logger *zap.Logger
}

// NewAnthropicClient creates an Anthropic-backed extraction client.
func NewAnthropicClient(cfg *config.AIConfig, logger *zap.Logger) *AnthropicClient {
	return &AnthropicClient{
		client: anthropic.NewClient(cfg.APIKey),
		cfg:    cfg,
		logger: logger.Named("llm"),
	}
}

// ParseQuote implements ExtractionClient.
func (c *AnthropicClient) ParseQuote(ctx context.Context, text string) ([]models.TaskCandidate, error) {
	if !c.cfg.HasCredential() {
		return nil, ErrCredentialMissing()
	}

	c.logger.Debug("quote extraction request",
		zap.String("model", c.cfg.ExtractionModel),
		zap.Int("text_len", len(text)))

	start := time.Now()
	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     anthropic.Model(c.cfg.ExtractionModel),
		System:    prompts.QuoteExtractionSystem,
		MaxTokens: anthropicMaxTokens,
		Messages: []anthropic.Message{
			anthropic.NewUserTextMessage(prompts.BuildQuoteExtractionPrompt(text)),
		},
	})
	if err != nil {
		c.logger.Error("quote extraction failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.String("error", logging.SanitizeError(err)))
		return nil, ClassifyError(err)
	}

	payload, err := ExtractJSON(resp.GetFirstContentText())
	if err != nil {
		return nil, NewError(ErrorTypeResponse, "extraction response is not JSON", err)
	}

	candidates, err := DecodeCandidates(payload)
	if err != nil {
		return nil, NewError(ErrorTypeResponse, "could not decode task candidates", err)
	}

	c.logger.Info("quote extraction completed",
		zap.Int("candidates", len(candidates)),
		zap.Duration("elapsed", time.Since(start)))

	return candidates, nil
}
