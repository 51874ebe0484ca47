package services

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/terramatch-studio/terramatch-engine/pkg/models"
	"github.com/terramatch-studio/terramatch-engine/pkg/repositories"
)

// testEnv wires real repositories over an in-process Redis so service tests
// exercise the full persist path.
type testEnv struct {
	projects ProjectService
	catalog  CatalogService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	kv := repositories.NewRedisKV(client)
	productRepo := repositories.NewProductRepository(kv)
	projectRepo := repositories.NewProjectRepository(kv)

	logger := zap.NewNop()
	return &testEnv{
		projects: NewProjectService(projectRepo, productRepo, logger),
		catalog:  NewCatalogService(productRepo, logger),
	}
}

func (e *testEnv) createProject(t *testing.T, name string) *models.Project {
	t.Helper()
	project, err := e.projects.Create(context.Background(), name)
	require.NoError(t, err)
	return project
}

func TestProjectService_CreateInitializesEmptyLists(t *testing.T) {
	env := newTestEnv(t)

	project := env.createProject(t, "Jardin Dupont")
	require.NotEmpty(t, project.ID)
	require.NotEmpty(t, project.CreatedAt)
	require.NotNil(t, project.Tasks)
	require.Empty(t, project.Tasks)
	require.Empty(t, project.GeneratedImages)
	require.Empty(t, project.SitePhoto)
}

func TestProjectService_TaskLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	project := env.createProject(t, "Jardin Dupont")

	task, err := env.projects.AddTask(ctx, project.ID)
	require.NoError(t, err)
	require.NotEmpty(t, task.ID)

	name := "Panneau Bois"
	location := "Mur Nord"
	updated, err := env.projects.UpdateTask(ctx, project.ID, task.ID, TaskUpdate{Name: &name, Location: &location})
	require.NoError(t, err)
	require.Equal(t, "Panneau Bois", updated.Name)
	require.Equal(t, "Mur Nord", updated.Location)

	// Unset fields stay untouched on a partial update.
	desc := "2 unités"
	updated, err = env.projects.UpdateTask(ctx, project.ID, task.ID, TaskUpdate{Description: &desc})
	require.NoError(t, err)
	require.Equal(t, "Panneau Bois", updated.Name)
	require.Equal(t, "2 unités", updated.Description)

	require.NoError(t, env.projects.RemoveTask(ctx, project.ID, task.ID))

	loaded, err := env.projects.Get(ctx, project.ID)
	require.NoError(t, err)
	require.Empty(t, loaded.Tasks)
}

func TestProjectService_SelectProductOverwritesNameAndReference(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	project := env.createProject(t, "Jardin Dupont")

	require.NoError(t, env.catalog.Save(ctx, models.Product{Reference: "REF9", Name: "Clôture Composite"}))

	task, err := env.projects.AddTask(ctx, project.ID)
	require.NoError(t, err)

	loc := "Fond de jardin"
	_, err = env.projects.UpdateTask(ctx, project.ID, task.ID, TaskUpdate{Location: &loc})
	require.NoError(t, err)

	selected, err := env.projects.SelectProduct(ctx, project.ID, task.ID, "REF9")
	require.NoError(t, err)
	require.Equal(t, "Clôture Composite", selected.Name)
	require.Equal(t, "REF9", selected.Reference)
	require.Equal(t, "Fond de jardin", selected.Location, "other fields are preserved")
}

func TestProjectService_SitePhoto(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	project := env.createProject(t, "Jardin Dupont")

	require.NoError(t, env.projects.SetSitePhoto(ctx, project.ID, "data:image/jpeg;base64,abc"))

	loaded, err := env.projects.Get(ctx, project.ID)
	require.NoError(t, err)
	require.Equal(t, "data:image/jpeg;base64,abc", loaded.SitePhoto)

	require.NoError(t, env.projects.ClearSitePhoto(ctx, project.ID))
	loaded, err = env.projects.Get(ctx, project.ID)
	require.NoError(t, err)
	require.Empty(t, loaded.SitePhoto)
}
