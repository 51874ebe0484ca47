// Package models contains domain types for terramatch-engine.
package models

import "strings"

// Product is a catalog entry the operator maintains. Identity is the
// reference code: stored case-sensitively, compared case-insensitively
// with surrounding whitespace ignored.
type Product struct {
	Reference string `json:"reference"`
	Name      string `json:"name"`
	URL       string `json:"url"`
	// ImageDisplay is an opaque image reference, either a data URL with an
	// inline-encoded bitmap or a remote URL.
	ImageDisplay string `json:"image_display"`
}

// NormalizeReference canonicalizes a reference code for comparison.
func NormalizeReference(ref string) string {
	return strings.ToLower(strings.TrimSpace(ref))
}

// SameReference reports whether two reference codes identify the same product.
func SameReference(a, b string) bool {
	return NormalizeReference(a) == NormalizeReference(b)
}
