package apperrors

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrNoSitePhoto        = errors.New("project has no site photo")
	ErrNoValidatedMatches = errors.New("no validated catalog matches")
	ErrNoRender           = errors.New("model produced no render")
)
