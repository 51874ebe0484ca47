package handlers

import (
	"context"

	"github.com/terramatch-studio/terramatch-engine/pkg/models"
	"github.com/terramatch-studio/terramatch-engine/pkg/services"
)

// mockProjectService implements services.ProjectService with function fields.
type mockProjectService struct {
	CreateFunc               func(ctx context.Context, name string) (*models.Project, error)
	ListFunc                 func(ctx context.Context) ([]models.Project, error)
	GetFunc                  func(ctx context.Context, id string) (*models.Project, error)
	DeleteFunc               func(ctx context.Context, id string) error
	AddTaskFunc              func(ctx context.Context, projectID string) (*models.ProjectTask, error)
	UpdateTaskFunc           func(ctx context.Context, projectID, taskID string, update services.TaskUpdate) (*models.ProjectTask, error)
	RemoveTaskFunc           func(ctx context.Context, projectID, taskID string) error
	SelectProductFunc        func(ctx context.Context, projectID, taskID, reference string) (*models.ProjectTask, error)
	AppendTasksFunc          func(ctx context.Context, projectID string, tasks []models.ProjectTask) error
	SetSitePhotoFunc         func(ctx context.Context, projectID, photo string) error
	ClearSitePhotoFunc       func(ctx context.Context, projectID string) error
	AppendGeneratedImageFunc func(ctx context.Context, projectID, image string) error

	AppendTasksCalls int
}

func (m *mockProjectService) Create(ctx context.Context, name string) (*models.Project, error) {
	return m.CreateFunc(ctx, name)
}

func (m *mockProjectService) List(ctx context.Context) ([]models.Project, error) {
	return m.ListFunc(ctx)
}

func (m *mockProjectService) Get(ctx context.Context, id string) (*models.Project, error) {
	return m.GetFunc(ctx, id)
}

func (m *mockProjectService) Delete(ctx context.Context, id string) error {
	return m.DeleteFunc(ctx, id)
}

func (m *mockProjectService) AddTask(ctx context.Context, projectID string) (*models.ProjectTask, error) {
	return m.AddTaskFunc(ctx, projectID)
}

func (m *mockProjectService) UpdateTask(ctx context.Context, projectID, taskID string, update services.TaskUpdate) (*models.ProjectTask, error) {
	return m.UpdateTaskFunc(ctx, projectID, taskID, update)
}

func (m *mockProjectService) RemoveTask(ctx context.Context, projectID, taskID string) error {
	return m.RemoveTaskFunc(ctx, projectID, taskID)
}

func (m *mockProjectService) SelectProduct(ctx context.Context, projectID, taskID, reference string) (*models.ProjectTask, error) {
	return m.SelectProductFunc(ctx, projectID, taskID, reference)
}

func (m *mockProjectService) AppendTasks(ctx context.Context, projectID string, tasks []models.ProjectTask) error {
	m.AppendTasksCalls++
	return m.AppendTasksFunc(ctx, projectID, tasks)
}

func (m *mockProjectService) SetSitePhoto(ctx context.Context, projectID, photo string) error {
	return m.SetSitePhotoFunc(ctx, projectID, photo)
}

func (m *mockProjectService) ClearSitePhoto(ctx context.Context, projectID string) error {
	return m.ClearSitePhotoFunc(ctx, projectID)
}

func (m *mockProjectService) AppendGeneratedImage(ctx context.Context, projectID, image string) error {
	return m.AppendGeneratedImageFunc(ctx, projectID, image)
}

// mockCatalogService implements services.CatalogService with function fields.
type mockCatalogService struct {
	ListFunc   func(ctx context.Context) ([]models.Product, error)
	SaveFunc   func(ctx context.Context, product models.Product) error
	DeleteFunc func(ctx context.Context, reference string) error
}

func (m *mockCatalogService) List(ctx context.Context) ([]models.Product, error) {
	return m.ListFunc(ctx)
}

func (m *mockCatalogService) Save(ctx context.Context, product models.Product) error {
	return m.SaveFunc(ctx, product)
}

func (m *mockCatalogService) Delete(ctx context.Context, reference string) error {
	return m.DeleteFunc(ctx, reference)
}

// mockExtractionService implements services.ExtractionService.
type mockExtractionService struct {
	ImportQuoteFunc  func(ctx context.Context, projectID, text string) ([]models.ProjectTask, error)
	ImportQuoteCalls int
}

func (m *mockExtractionService) ImportQuote(ctx context.Context, projectID, text string) ([]models.ProjectTask, error) {
	m.ImportQuoteCalls++
	return m.ImportQuoteFunc(ctx, projectID, text)
}

// mockVisualizationService implements services.VisualizationService.
type mockVisualizationService struct {
	GenerateFunc func(ctx context.Context, projectID string) (string, error)
}

func (m *mockVisualizationService) Generate(ctx context.Context, projectID string) (string, error) {
	return m.GenerateFunc(ctx, projectID)
}
