// Package services implements the application logic of terramatch-engine.
package services

import (
	"strings"

	"github.com/terramatch-studio/terramatch-engine/pkg/models"
)

// Matcher decides which catalog product a task reconciles to. Matching is a
// pure function of (task, catalog), recomputed on every read: there is no
// cached match state, so catalog or task edits are reflected immediately.
type Matcher interface {
	Match(task models.ProjectTask, catalog []models.Product) (*models.Product, bool)
}

// CatalogMatcher is the default reference-then-name fallback matcher.
//
// The name clause is a deliberately permissive substring test so imprecise
// AI or spreadsheet extractions still land on the right product. Short
// product names can therefore match too eagerly; that imprecision is a known
// trade-off, kept behind this interface so a stricter algorithm could be
// substituted without touching callers.
type CatalogMatcher struct{}

// Match scans the catalog in order and returns the first product for which
// either the task reference equals the product reference (case-insensitive,
// trimmed) or the product name contains the task name (case-insensitive).
// A task with neither reference nor name never matches.
func (CatalogMatcher) Match(task models.ProjectTask, catalog []models.Product) (*models.Product, bool) {
	if task.Reference == "" && task.Name == "" {
		return nil, false
	}

	taskRef := models.NormalizeReference(task.Reference)
	taskName := strings.ToLower(task.Name)

	for i := range catalog {
		p := &catalog[i]
		if task.Reference != "" && models.NormalizeReference(p.Reference) == taskRef {
			return p, true
		}
		if task.Name != "" && strings.Contains(strings.ToLower(p.Name), taskName) {
			return p, true
		}
	}
	return nil, false
}

// TaskMatch pairs a task with the product it reconciled to.
type TaskMatch struct {
	Task    models.ProjectTask
	Product models.Product
}

// ValidMatches returns the matched (task, product) pairs in task order.
// Only these tasks are eligible for a visualization request.
func ValidMatches(m Matcher, tasks []models.ProjectTask, catalog []models.Product) []TaskMatch {
	matches := make([]TaskMatch, 0, len(tasks))
	for _, task := range tasks {
		if product, ok := m.Match(task, catalog); ok {
			matches = append(matches, TaskMatch{Task: task, Product: *product})
		}
	}
	return matches
}

// MatchResults returns the per-task reconciliation view for display.
func MatchResults(m Matcher, tasks []models.ProjectTask, catalog []models.Product) []models.MatchResult {
	results := make([]models.MatchResult, 0, len(tasks))
	for _, task := range tasks {
		term := task.Name
		if term == "" {
			term = task.Reference
		}
		result := models.MatchResult{TaskID: task.ID, Term: term}
		if product, ok := m.Match(task, catalog); ok {
			result.Product = product
			result.IsFound = true
		}
		results = append(results, result)
	}
	return results
}

// MatchedCount returns the number of validated tasks; visualization is
// available once it reaches one.
func MatchedCount(m Matcher, tasks []models.ProjectTask, catalog []models.Product) int {
	count := 0
	for _, task := range tasks {
		if _, ok := m.Match(task, catalog); ok {
			count++
		}
	}
	return count
}
