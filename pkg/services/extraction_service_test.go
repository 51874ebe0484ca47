package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/terramatch-studio/terramatch-engine/pkg/apperrors"
	"github.com/terramatch-studio/terramatch-engine/pkg/llm"
	"github.com/terramatch-studio/terramatch-engine/pkg/models"
)

func TestExtractionService_ImportQuoteAppendsNormalizedTasks(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	project := env.createProject(t, "Jardin Dupont")

	mock := &llm.MockExtractionClient{
		ParseQuoteFunc: func(ctx context.Context, text string) ([]models.TaskCandidate, error) {
			return []models.TaskCandidate{
				{Reference: "P2AA11489", Name: "Panneau Bois Arifi", Location: "Mur mitoyen gauche", Description: "3 panneaux"},
				{Name: "Dalle Grès"},
			}, nil
		},
	}
	svc := NewExtractionService(env.projects, mock, zap.NewNop())

	tasks, err := svc.ImportQuote(ctx, project.ID, "Devis: 3 panneaux bois Arifi, mur mitoyen gauche...")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.NotEmpty(t, tasks[0].ID)
	assert.NotEqual(t, tasks[0].ID, tasks[1].ID)
	assert.Equal(t, "P2AA11489", tasks[0].Reference)
	assert.Equal(t, "", tasks[1].Reference, "absent fields default to empty strings")

	loaded, err := env.projects.Get(ctx, project.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Tasks, 2)
}

func TestExtractionService_EmptyResultLeavesProjectUnchanged(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	project := env.createProject(t, "Jardin Dupont")

	svc := NewExtractionService(env.projects, &llm.MockExtractionClient{}, zap.NewNop())

	_, err := svc.ImportQuote(ctx, project.ID, "rien d'utile")
	assert.ErrorIs(t, err, ErrNothingExtracted)

	loaded, err := env.projects.Get(ctx, project.ID)
	require.NoError(t, err)
	assert.Empty(t, loaded.Tasks)
}

func TestExtractionService_CredentialErrorPassesThrough(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t, "Jardin Dupont")

	mock := &llm.MockExtractionClient{
		ParseQuoteFunc: func(ctx context.Context, text string) ([]models.TaskCandidate, error) {
			return nil, llm.ErrCredentialMissing()
		},
	}
	svc := NewExtractionService(env.projects, mock, zap.NewNop())

	_, err := svc.ImportQuote(context.Background(), project.ID, "devis")
	assert.True(t, llm.IsCredentialError(err), "credential errors must not be conflated with generic failures")
}

func TestExtractionService_UnknownProjectFailsBeforeAICall(t *testing.T) {
	env := newTestEnv(t)

	mock := &llm.MockExtractionClient{}
	svc := NewExtractionService(env.projects, mock, zap.NewNop())

	_, err := svc.ImportQuote(context.Background(), "missing", "devis")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Zero(t, mock.ParseQuoteCalls)
}

func TestExtractionService_BlankTextRejected(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t, "Jardin Dupont")

	mock := &llm.MockExtractionClient{}
	svc := NewExtractionService(env.projects, mock, zap.NewNop())

	_, err := svc.ImportQuote(context.Background(), project.ID, "   ")
	assert.Error(t, err)
	assert.Zero(t, mock.ParseQuoteCalls)
}
