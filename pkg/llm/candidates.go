package llm

import (
	"encoding/json"
	"fmt"

	"github.com/terramatch-studio/terramatch-engine/pkg/models"
)

// rawCandidate tolerates models returning numbers or booleans where the
// schema asks for strings. Each field is coerced individually; anything
// absent or null becomes the empty string.
type rawCandidate struct {
	Reference   json.RawMessage `json:"reference"`
	Name        json.RawMessage `json:"name"`
	Location    json.RawMessage `json:"location"`
	Description json.RawMessage `json:"description"`
}

// DecodeCandidates parses an extraction response payload into task
// candidates. Both the documented envelope {"tasks": [...]} and a bare array
// are accepted, since models drift between the two.
func DecodeCandidates(payload string) ([]models.TaskCandidate, error) {
	var envelope struct {
		Tasks []rawCandidate `json:"tasks"`
	}

	raw := []rawCandidate(nil)
	if err := json.Unmarshal([]byte(payload), &envelope); err == nil && envelope.Tasks != nil {
		raw = envelope.Tasks
	} else if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, fmt.Errorf("extraction response is not a task list: %w", err)
	}

	candidates := make([]models.TaskCandidate, 0, len(raw))
	for _, rc := range raw {
		candidates = append(candidates, models.TaskCandidate{
			Reference:   coerceString(rc.Reference),
			Name:        coerceString(rc.Name),
			Location:    coerceString(rc.Location),
			Description: coerceString(rc.Description),
		})
	}
	return candidates, nil
}

// coerceString converts a raw JSON value to a string, handling string,
// number, boolean and null forms.
func coerceString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		if n == float64(int64(n)) {
			return fmt.Sprintf("%d", int64(n))
		}
		return fmt.Sprintf("%g", n)
	}

	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return fmt.Sprintf("%t", b)
	}

	return string(raw)
}
