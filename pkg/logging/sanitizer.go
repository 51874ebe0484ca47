package logging

import (
	"fmt"
	"regexp"
)

// RedactedText is the replacement text for sensitive data.
const RedactedText = "[REDACTED]"

var (
	// Matches API keys passed as query parameters or headers, the way
	// OpenAI-compatible endpoints echo them back in error bodies.
	apiKeyPattern = regexp.MustCompile(`(?i)(api[_-]?key|key|token)=[A-Za-z0-9-_]{16,}`)

	// Matches bearer credentials in error messages.
	bearerPattern = regexp.MustCompile(`Bearer\s+[A-Za-z0-9-_.]+`)

	// Matches inline base64 image payloads. Rendered site photos and
	// textures run to megabytes; they must never land in a log line.
	dataURLPattern = regexp.MustCompile(`data:image/[a-zA-Z0-9.+-]+;base64,[A-Za-z0-9+/=]+`)
)

// SanitizeError prepares an error message for logging. API credentials are
// redacted and inline image payloads are collapsed to a length marker.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return Sanitize(err.Error())
}

// Sanitize redacts credentials and collapses image payloads in s.
func Sanitize(s string) string {
	s = apiKeyPattern.ReplaceAllString(s, "${1}="+RedactedText)
	s = bearerPattern.ReplaceAllString(s, "Bearer "+RedactedText)
	s = dataURLPattern.ReplaceAllStringFunc(s, func(m string) string {
		return fmt.Sprintf("data:image[%d bytes]", len(m))
	})
	return s
}
