package persistence

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	slugPattern    = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// DeriveSlug converts a display name into its canonical slug: trimmed, lowercased,
// with whitespace runs collapsed into single hyphens. The result is what signup
// stores and what public tenant URLs use.
func DeriveSlug(name string) string {
	trimmed := strings.TrimSpace(name)
	return whitespaceRuns.ReplaceAllString(strings.ToLower(trimmed), "-")
}

// NormalizeSlug trims whitespace, lowercases the value, and ensures it matches
// the canonical URL-safe slug pattern required for public identifiers.
func NormalizeSlug(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", errors.New("slug is required")
	}

	normalized := strings.ToLower(trimmed)
	if !slugPattern.MatchString(normalized) {
		return "", fmt.Errorf("invalid slug %q: must match ^[a-z0-9]+(?:-[a-z0-9]+)*$", input)
	}

	return normalized, nil
}
