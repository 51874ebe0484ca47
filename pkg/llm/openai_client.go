package llm

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/terramatch-studio/terramatch-engine/pkg/config"
	"github.com/terramatch-studio/terramatch-engine/pkg/logging"
	"github.com/terramatch-studio/terramatch-engine/pkg/models"
	"github.com/terramatch-studio/terramatch-engine/pkg/prompts"
)

// dataURLPattern finds an inline-encoded image inside a model response.
var dataURLPattern = regexp.MustCompile(`data:image/[a-zA-Z0-9.+-]+;base64,[A-Za-z0-9+/=]+`)

// OpenAIClient talks to an OpenAI-compatible endpoint (the Gemini OpenAI
// compatibility surface by default). It serves both extraction and
// visualization; the image model is addressed through the same endpoint.
type OpenAIClient struct {
	client *openai.Client
	cfg    *config.AIConfig
	logger *zap.Logger
}

// NewOpenAIClient creates a client for the configured endpoint. A missing
// API key is not an error here; calls fail with a credential error instead,
// so the operator can be prompted to select a key.
func NewOpenAIClient(cfg *config.AIConfig, logger *zap.Logger) *OpenAIClient {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = strings.TrimSuffix(cfg.Endpoint, "/")

	return &OpenAIClient{
		client: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
		logger: logger.Named("llm"),
	}
}

// ParseQuote implements ExtractionClient.
func (c *OpenAIClient) ParseQuote(ctx context.Context, text string) ([]models.TaskCandidate, error) {
	if !c.cfg.HasCredential() {
		return nil, ErrCredentialMissing()
	}

	c.logger.Debug("quote extraction request",
		zap.String("model", c.cfg.ExtractionModel),
		zap.Int("text_len", len(text)))

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.cfg.ExtractionModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompts.QuoteExtractionSystem},
			{Role: openai.ChatMessageRoleUser, Content: prompts.BuildQuoteExtractionPrompt(text)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		c.logger.Error("quote extraction failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.String("error", logging.SanitizeError(err)))
		return nil, ClassifyError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, NewError(ErrorTypeResponse, "no choices in extraction response", nil)
	}

	payload, err := ExtractJSON(resp.Choices[0].Message.Content)
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

// GenerateVisualization implements VisualizationClient. The request carries
// the site photo first, then the texture images in order, then the placement
// instruction. An answer without an inline image is a soft miss: ("", nil).
func (c *OpenAIClient) GenerateVisualization(ctx context.Context, sitePhoto string, textures []string, instruction string) (string, error) {
	if !c.cfg.HasCredential() {
		return "", ErrCredentialMissing()
	}

	parts := make([]openai.ChatMessagePart, 0, len(textures)+2)
	parts = append(parts, openai.ChatMessagePart{
		Type:     openai.ChatMessagePartTypeImageURL,
		ImageURL: &openai.ChatMessageImageURL{URL: asDataURL(sitePhoto)},
	})
	for _, texture := range textures {
		parts = append(parts, openai.ChatMessagePart{
			Type:     openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{URL: asDataURL(texture)},
		})
	}
	parts = append(parts, openai.ChatMessagePart{
		Type: openai.ChatMessagePartTypeText,
		Text: instruction,
	})

	c.logger.Debug("visualization request",
		zap.String("model", c.cfg.ImageModel),
		zap.Int("textures", len(textures)))

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.cfg.ImageModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, MultiContent: parts},
		},
	})
	if err != nil {
		c.logger.Error("visualization failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.String("error", logging.SanitizeError(err)))
		return "", ClassifyError(err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}

	image := dataURLPattern.FindString(resp.Choices[0].Message.Content)
	c.logger.Info("visualization completed",
		zap.Bool("image_returned", image != ""),
		zap.Duration("elapsed", time.Since(start)))

	return image, nil
}

// asDataURL normalizes an image reference for the request: data URLs and
// remote URLs pass through, bare base64 payloads are wrapped as JPEG.
func asDataURL(image string) string {
	if strings.HasPrefix(image, "data:") ||
		strings.HasPrefix(image, "http://") ||
		strings.HasPrefix(image, "https://") {
		return image
	}
	return "data:image/jpeg;base64," + image
}
