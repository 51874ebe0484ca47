package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/terramatch-studio/terramatch-engine/pkg/apperrors"
	"github.com/terramatch-studio/terramatch-engine/pkg/models"
	"github.com/terramatch-studio/terramatch-engine/pkg/repositories"
)

// TaskUpdate carries an in-place field edit for a task. Nil fields are left
// untouched.
type TaskUpdate struct {
	Reference   *string `json:"reference"`
	Name        *string `json:"name"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
}

// ProjectService manages projects and their task lists. Every mutation is
// persisted as one full-entity overwrite through the repository.
type ProjectService interface {
	Create(ctx context.Context, name string) (*models.Project, error)
	List(ctx context.Context) ([]models.Project, error)
	Get(ctx context.Context, id string) (*models.Project, error)
	Delete(ctx context.Context, id string) error

	AddTask(ctx context.Context, projectID string) (*models.ProjectTask, error)
	UpdateTask(ctx context.Context, projectID, taskID string, update TaskUpdate) (*models.ProjectTask, error)
	RemoveTask(ctx context.Context, projectID, taskID string) error
	SelectProduct(ctx context.Context, projectID, taskID, reference string) (*models.ProjectTask, error)
	AppendTasks(ctx context.Context, projectID string, tasks []models.ProjectTask) error

	SetSitePhoto(ctx context.Context, projectID, photo string) error
	ClearSitePhoto(ctx context.Context, projectID string) error
	AppendGeneratedImage(ctx context.Context, projectID, image string) error
}

type projectService struct {
	projects repositories.ProjectRepository
	catalog  repositories.ProductRepository
	logger   *zap.Logger
}

// NewProjectService creates a project service.
func NewProjectService(projects repositories.ProjectRepository, catalog repositories.ProductRepository, logger *zap.Logger) ProjectService {
	return &projectService{projects: projects, catalog: catalog, logger: logger}
}

// Create makes a new empty project. The creation date is formatted once and
// never changes afterwards.
func (s *projectService) Create(ctx context.Context, name string) (*models.Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("project name is required")
	}

	project := &models.Project{
		ID:              uuid.NewString(),
		Name:            strings.TrimSpace(name),
		CreatedAt:       time.Now().Format("02/01/2006"),
		Tasks:           []models.ProjectTask{},
		GeneratedImages: []string{},
	}

	if err := s.projects.Save(ctx, project); err != nil {
		return nil, err
	}
	s.logger.Info("project created", zap.String("project_id", project.ID), zap.String("name", project.Name))
	return project, nil
}

func (s *projectService) List(ctx context.Context) ([]models.Project, error) {
	return s.projects.List(ctx)
}

func (s *projectService) Get(ctx context.Context, id string) (*models.Project, error) {
	return s.projects.Get(ctx, id)
}

func (s *projectService) Delete(ctx context.Context, id string) error {
	if err := s.projects.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("project deleted", zap.String("project_id", id))
	return nil
}

// AddTask appends a new empty task for manual editing.
func (s *projectService) AddTask(ctx context.Context, projectID string) (*models.ProjectTask, error) {
	project, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}

	task := models.ProjectTask{ID: uuid.NewString()}
	project.Tasks = append(project.Tasks, task)

	if err := s.projects.Save(ctx, project); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask edits task fields in place.
func (s *projectService) UpdateTask(ctx context.Context, projectID, taskID string, update TaskUpdate) (*models.ProjectTask, error) {
	project, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}

	task := findTask(project, taskID)
	if task == nil {
		return nil, apperrors.ErrNotFound
	}

	if update.Reference != nil {
		task.Reference = *update.Reference
	}
	if update.Name != nil {
		task.Name = *update.Name
	}
	if update.Location != nil {
		task.Location = *update.Location
	}
	if update.Description != nil {
		task.Description = *update.Description
	}

	if err := s.projects.Save(ctx, project); err != nil {
		return nil, err
	}
	return task, nil
}

// RemoveTask deletes one task from the project.
func (s *projectService) RemoveTask(ctx context.Context, projectID, taskID string) error {
	project, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return err
	}

	kept := project.Tasks[:0]
	found := false
	for _, t := range project.Tasks {
		if t.ID == taskID {
			found = true
			continue
		}
		kept = append(kept, t)
	}
	if !found {
		return apperrors.ErrNotFound
	}
	project.Tasks = kept

	return s.projects.Save(ctx, project)
}

// SelectProduct overwrites a task's name and reference from a chosen catalog
// product. The task keeps only denormalized copies; later catalog edits do
// not propagate back.
func (s *projectService) SelectProduct(ctx context.Context, projectID, taskID, reference string) (*models.ProjectTask, error) {
	project, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}

	task := findTask(project, taskID)
	if task == nil {
		return nil, apperrors.ErrNotFound
	}

	products, err := s.catalog.List(ctx)
	if err != nil {
		return nil, err
	}

	var chosen *models.Product
	for i := range products {
		if models.SameReference(products[i].Reference, reference) {
			chosen = &products[i]
			break
		}
	}
	if chosen == nil {
		return nil, apperrors.ErrNotFound
	}

	task.Name = chosen.Name
	task.Reference = chosen.Reference

	if err := s.projects.Save(ctx, project); err != nil {
		return nil, err
	}
	return task, nil
}

// AppendTasks appends a batch of imported tasks in one persist call: either
// the whole batch lands or none of it does.
func (s *projectService) AppendTasks(ctx context.Context, projectID string, tasks []models.ProjectTask) error {
	project, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return err
	}

	project.Tasks = append(project.Tasks, tasks...)

	if err := s.projects.Save(ctx, project); err != nil {
		return err
	}
	s.logger.Info("tasks imported",
		zap.String("project_id", projectID),
		zap.Int("count", len(tasks)))
	return nil
}

// SetSitePhoto replaces the project's site photo.
func (s *projectService) SetSitePhoto(ctx context.Context, projectID, photo string) error {
	if photo == "" {
		return fmt.Errorf("site photo is required")
	}
	project, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return err
	}
	project.SitePhoto = photo
	return s.projects.Save(ctx, project)
}

// ClearSitePhoto removes the project's site photo.
func (s *projectService) ClearSitePhoto(ctx context.Context, projectID string) error {
	project, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return err
	}
	project.SitePhoto = ""
	return s.projects.Save(ctx, project)
}

// AppendGeneratedImage appends one render to the project's image history.
// The history is append-only; nothing ever edits or reorders it.
func (s *projectService) AppendGeneratedImage(ctx context.Context, projectID, image string) error {
	project, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return err
	}
	project.GeneratedImages = append(project.GeneratedImages, image)
	return s.projects.Save(ctx, project)
}

func findTask(project *models.Project, taskID string) *models.ProjectTask {
	for i := range project.Tasks {
		if project.Tasks[i].ID == taskID {
			return &project.Tasks[i]
		}
	}
	return nil
}
