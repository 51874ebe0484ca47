package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/terramatch-studio/terramatch-engine/pkg/apperrors"
	"github.com/terramatch-studio/terramatch-engine/pkg/models"
)

// ProjectRepository defines project data access.
type ProjectRepository interface {
	List(ctx context.Context) ([]models.Project, error)
	Get(ctx context.Context, id string) (*models.Project, error)
	Save(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id string) error
}

// projectRepository implements ProjectRepository on a KV store.
type projectRepository struct {
	store KV
}

// NewProjectRepository creates a project repository over the given store.
func NewProjectRepository(store KV) ProjectRepository {
	return &projectRepository{store: store}
}

// List returns all projects, oldest first. An absent collection is empty.
func (r *projectRepository) List(ctx context.Context) ([]models.Project, error) {
	raw, ok, err := r.store.Get(ctx, ProjectsKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}
	if !ok {
		return []models.Project{}, nil
	}

	var projects []models.Project
	if err := json.Unmarshal([]byte(raw), &projects); err != nil {
		return nil, fmt.Errorf("failed to decode projects collection: %w", err)
	}
	return projects, nil
}

// Get retrieves a project by ID.
func (r *projectRepository) Get(ctx context.Context, id string) (*models.Project, error) {
	projects, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		if projects[i].ID == id {
			return &projects[i], nil
		}
	}
	return nil, apperrors.ErrNotFound
}

// Save upserts a project as a full-entity overwrite: the project with the
// same ID is replaced, or the project is appended. Idempotent.
func (r *projectRepository) Save(ctx context.Context, project *models.Project) error {
	projects, err := r.List(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range projects {
		if projects[i].ID == project.ID {
			projects[i] = *project
			replaced = true
			break
		}
	}
	if !replaced {
		projects = append(projects, *project)
	}

	return r.writeAll(ctx, projects)
}

// Delete removes a project wholesale, tasks and image history included.
func (r *projectRepository) Delete(ctx context.Context, id string) error {
	projects, err := r.List(ctx)
	if err != nil {
		return err
	}

	filtered := projects[:0]
	for _, p := range projects {
		if p.ID != id {
			filtered = append(filtered, p)
		}
	}

	return r.writeAll(ctx, filtered)
}

func (r *projectRepository) writeAll(ctx context.Context, projects []models.Project) error {
	if projects == nil {
		projects = []models.Project{}
	}
	data, err := json.Marshal(projects)
	if err != nil {
		return fmt.Errorf("failed to encode projects collection: %w", err)
	}
	if err := r.store.Set(ctx, ProjectsKey, string(data)); err != nil {
		return fmt.Errorf("failed to save projects: %w", err)
	}
	return nil
}
