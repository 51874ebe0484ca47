package llm

import (
	"testing"
)

func TestExtractJSON_PlainObject(t *testing.T) {
	input := `{"tasks": [{"reference": "REF1"}]}`
	result, err := ExtractJSON(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != input {
		t.Errorf("expected %q, got %q", input, result)
	}
}

func TestExtractJSON_PlainArray(t *testing.T) {
	input := `[{"name": "Panneau Bois"}, {"name": "Dalle Grès"}]`
	result, err := ExtractJSON(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != input {
		t.Errorf("expected %q, got %q", input, result)
	}
}

func TestExtractJSON_MarkdownFence(t *testing.T) {
	input := "Voici le résultat :\n```json\n{\"tasks\": []}\n```"
	expected := `{"tasks": []}`
	result, err := ExtractJSON(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != expected {
		t.Errorf("expected %q, got %q", expected, result)
	}
}

func TestExtractJSON_BracketsInsideStrings(t *testing.T) {
	input := `{"name": "Panneau {spécial} [grand]"}`
	result, err := ExtractJSON("préambule " + input + " suite")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != input {
		t.Errorf("expected %q, got %q", input, result)
	}
}

func TestExtractJSON_EscapedQuotes(t *testing.T) {
	input := `{"name": "dit \"bois\" ici"}`
	result, err := ExtractJSON(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != input {
		t.Errorf("expected %q, got %q", input, result)
	}
}

func TestExtractJSON_NoJSON(t *testing.T) {
	if _, err := ExtractJSON("pas de JSON ici"); err == nil {
		t.Fatal("expected error for response without JSON")
	}
}

func TestExtractJSON_UnbalancedBrackets(t *testing.T) {
	if _, err := ExtractJSON(`{"tasks": [`); err == nil {
		t.Fatal("expected error for unbalanced JSON")
	}
}
