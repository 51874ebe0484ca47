package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/terramatch-studio/terramatch-engine/pkg/llm"
	"github.com/terramatch-studio/terramatch-engine/pkg/models"
)

// ErrNothingExtracted means the model answered but produced no usable line
// items; the project is left unchanged.
var ErrNothingExtracted = errors.New("no tasks extracted from quote")

// ExtractionService turns free-text quote content into project tasks via
// the AI extraction client.
type ExtractionService interface {
	// ImportQuote extracts tasks from text and appends them to the project,
	// all or nothing. Credential errors from the client pass through
	// unwrapped so the caller can prompt for key re-selection.
	ImportQuote(ctx context.Context, projectID, text string) ([]models.ProjectTask, error)
}

type extractionService struct {
	projects ProjectService
	client   llm.ExtractionClient
	logger   *zap.Logger
}

// NewExtractionService creates an extraction service.
func NewExtractionService(projects ProjectService, client llm.ExtractionClient, logger *zap.Logger) ExtractionService {
	return &extractionService{projects: projects, client: client, logger: logger}
}

func (s *extractionService) ImportQuote(ctx context.Context, projectID, text string) ([]models.ProjectTask, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("quote text is required")
	}

	// Resolve the project before the external call so an unknown ID fails
	// cheaply.
	if _, err := s.projects.Get(ctx, projectID); err != nil {
		return nil, err
	}

	candidates, err := s.client.ParseQuote(ctx, text)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, ErrNothingExtracted
	}

	tasks := make([]models.ProjectTask, 0, len(candidates))
	for _, c := range candidates {
		tasks = append(tasks, models.ProjectTask{
			ID:          uuid.NewString(),
			Reference:   c.Reference,
			Name:        c.Name,
			Location:    c.Location,
			Description: c.Description,
		})
	}

	if err := s.projects.AppendTasks(ctx, projectID, tasks); err != nil {
		return nil, err
	}

	s.logger.Info("quote imported",
		zap.String("project_id", projectID),
		zap.Int("tasks", len(tasks)))
	return tasks, nil
}
