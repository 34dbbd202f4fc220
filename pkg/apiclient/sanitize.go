package apiclient

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

const maxSnippet = 300

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// plainText strips markup from error bodies (proxies and web servers answer
// with HTML pages) and collapses whitespace so the message fits a dialog.
func plainText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	cleaned := html.UnescapeString(textSanitizer().Sanitize(trimmed))
	return snippet(strings.Join(strings.Fields(cleaned), " "))
}

func snippet(raw string) string {
	trimmed := strings.TrimSpace(raw)
	runes := []rune(trimmed)
	if len(runes) <= maxSnippet {
		return trimmed
	}
	return string(runes[:maxSnippet]) + "…"
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
