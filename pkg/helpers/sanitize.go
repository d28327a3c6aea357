package helpers

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// maxSanitizePasses bounds the decode loop for entity-nested input.
const maxSanitizePasses = 8

// SanitizeText strips every HTML element from user input and trims it.
// Entities escaped by the policy are decoded back so stored text stays plain,
// and the policy is reapplied until decoding no longer reveals markup.
func SanitizeText(s string) string {
	out := s
	for i := 0; i < maxSanitizePasses; i++ {
		next := html.UnescapeString(strictPolicy.Sanitize(out))
		if next == out {
			return strings.TrimSpace(out)
		}
		out = next
	}
	// still unstable: keep the escaped form
	return strings.TrimSpace(strictPolicy.Sanitize(out))
}
