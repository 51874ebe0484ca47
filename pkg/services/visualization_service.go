package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/terramatch-studio/terramatch-engine/pkg/apperrors"
	"github.com/terramatch-studio/terramatch-engine/pkg/llm"
	"github.com/terramatch-studio/terramatch-engine/pkg/models"
	"github.com/terramatch-studio/terramatch-engine/pkg/prompts"
)

// maxTextureProducts caps how many product textures are forwarded with a
// visualization request, bounding payload size and cost. The first matched
// products in task order win; no business rule prioritizes beyond that.
const maxTextureProducts = 3

// VisualizationService builds and runs AI render requests for a project.
type VisualizationService interface {
	// Generate renders a composite of the project's site photo with the
	// matched product textures, appends it to the project's image history
	// and returns it. Preconditions (site photo, at least one validated
	// match) are checked before any external call.
	Generate(ctx context.Context, projectID string) (string, error)
}

type visualizationService struct {
	projects ProjectService
	catalog  CatalogService
	matcher  Matcher
	client   llm.VisualizationClient
	logger   *zap.Logger
}

// NewVisualizationService creates a visualization service.
func NewVisualizationService(projects ProjectService, catalog CatalogService, matcher Matcher, client llm.VisualizationClient, logger *zap.Logger) VisualizationService {
	return &visualizationService{
		projects: projects,
		catalog:  catalog,
		matcher:  matcher,
		client:   client,
		logger:   logger,
	}
}

func (s *visualizationService) Generate(ctx context.Context, projectID string) (string, error) {
	project, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return "", err
	}
	if project.SitePhoto == "" {
		return "", apperrors.ErrNoSitePhoto
	}

	products, err := s.catalog.List(ctx)
	if err != nil {
		return "", err
	}

	matches := ValidMatches(s.matcher, project.Tasks, products)
	if len(matches) == 0 {
		return "", apperrors.ErrNoValidatedMatches
	}

	// The placement summary covers every matched task; only the texture
	// images are truncated.
	matchedTasks := make([]models.ProjectTask, 0, len(matches))
	for _, m := range matches {
		matchedTasks = append(matchedTasks, m.Task)
	}
	instruction := prompts.BuildVisualizationInstruction(prompts.BuildTaskSummary(matchedTasks))

	limited := matches
	if len(limited) > maxTextureProducts {
		limited = limited[:maxTextureProducts]
	}
	textures := make([]string, 0, len(limited))
	for _, m := range limited {
		textures = append(textures, m.Product.ImageDisplay)
	}

	s.logger.Info("visualization requested",
		zap.String("project_id", projectID),
		zap.Int("matched_tasks", len(matches)),
		zap.Int("textures", len(textures)))

	image, err := s.client.GenerateVisualization(ctx, project.SitePhoto, textures, instruction)
	if err != nil {
		return "", err
	}
	if image == "" {
		return "", apperrors.ErrNoRender
	}

	if err := s.projects.AppendGeneratedImage(ctx, projectID, image); err != nil {
		return "", err
	}

	s.logger.Info("visualization stored", zap.String("project_id", projectID))
	return image, nil
}
