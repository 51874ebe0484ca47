package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/terramatch-studio/terramatch-engine/pkg/apperrors"
	"github.com/terramatch-studio/terramatch-engine/pkg/llm"
	"github.com/terramatch-studio/terramatch-engine/pkg/models"
	"github.com/terramatch-studio/terramatch-engine/pkg/services"
)

func newImportsServer(projects *mockProjectService, extraction *mockExtractionService) *http.ServeMux {
	mux := http.NewServeMux()
	NewImportsHandler(projects, extraction, zap.NewNop()).RegisterRoutes(mux, passthrough)
	return mux
}

func spreadsheetRequest(t *testing.T, target, content string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "devis.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestImportsHandler_QuoteSuccess(t *testing.T) {
	extraction := &mockExtractionService{
		ImportQuoteFunc: func(ctx context.Context, projectID, text string) ([]models.ProjectTask, error) {
			return []models.ProjectTask{{ID: "t1", Name: "Panneau Bois Arifi"}}, nil
		},
	}
	mux := newImportsServer(&mockProjectService{}, extraction)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/projects/p1/import/quote",
		strings.NewReader(`{"text":"Fourniture et pose de panneaux bois"}`)))

	require.Equal(t, http.StatusCreated, rec.Code)
	var tasks []models.ProjectTask
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, "Panneau Bois Arifi", tasks[0].Name)
}

func TestImportsHandler_QuoteRejectsBlankText(t *testing.T) {
	extraction := &mockExtractionService{}
	mux := newImportsServer(&mockProjectService{}, extraction)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/projects/p1/import/quote",
		strings.NewReader(`{"text":""}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, extraction.ImportQuoteCalls, "blank text never reaches the service")
}

func TestImportsHandler_QuoteErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"nothing extracted", services.ErrNothingExtracted, http.StatusBadRequest, "nothing_extracted"},
		{"unknown project", apperrors.ErrNotFound, http.StatusNotFound, "not_found"},
		{"credential failure", llm.ErrCredentialMissing(), http.StatusUnauthorized, "credential_unavailable"},
		{"transport failure", llm.NewError(llm.ErrorTypeTransport, "timeout", nil), http.StatusBadGateway, "ai_call_failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extraction := &mockExtractionService{
				ImportQuoteFunc: func(ctx context.Context, projectID, text string) ([]models.ProjectTask, error) {
					return nil, tt.err
				},
			}
			mux := newImportsServer(&mockProjectService{}, extraction)

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/projects/p1/import/quote",
				strings.NewReader(`{"text":"devis"}`)))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantCode)
		})
	}
}

func TestImportsHandler_SpreadsheetSuccess(t *testing.T) {
	projects := &mockProjectService{
		GetFunc: func(ctx context.Context, id string) (*models.Project, error) {
			return &models.Project{ID: id}, nil
		},
		AppendTasksFunc: func(ctx context.Context, projectID string, tasks []models.ProjectTask) error {
			return nil
		},
	}
	mux := newImportsServer(projects, &mockExtractionService{})

	content := "Référence;Désignation;Lieu;Description\n" +
		"P2AA11489;Panneau Bois Arifi;Terrasse sud;Fourniture et pose\n"
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, spreadsheetRequest(t, "/api/projects/p1/import/spreadsheet", content))

	require.Equal(t, http.StatusCreated, rec.Code)
	var tasks []models.ProjectTask
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, "P2AA11489", tasks[0].Reference)
	assert.Equal(t, "Terrasse sud", tasks[0].Location)
	assert.Equal(t, 1, projects.AppendTasksCalls)
}

func TestImportsHandler_SpreadsheetUnknownProject(t *testing.T) {
	projects := &mockProjectService{
		GetFunc: func(ctx context.Context, id string) (*models.Project, error) {
			return nil, apperrors.ErrNotFound
		},
	}
	mux := newImportsServer(projects, &mockExtractionService{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, spreadsheetRequest(t, "/api/projects/nope/import/spreadsheet", "Référence\nREF1\n"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestImportsHandler_SpreadsheetErrorMapping(t *testing.T) {
	projects := &mockProjectService{
		GetFunc: func(ctx context.Context, id string) (*models.Project, error) {
			return &models.Project{ID: id}, nil
		},
	}
	mux := newImportsServer(projects, &mockExtractionService{})

	tests := []struct {
		name     string
		content  string
		wantCode string
	}{
		{"empty file", "", "empty_file"},
		{"unrecognized headers", "Colonne A;Colonne B\nx;y\n", "no_rows_matched"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, spreadsheetRequest(t, "/api/projects/p1/import/spreadsheet", tt.content))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantCode)
		})
	}
}

func TestImportsHandler_SpreadsheetRequiresFile(t *testing.T) {
	mux := newImportsServer(&mockProjectService{}, &mockExtractionService{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/projects/p1/import/spreadsheet", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
