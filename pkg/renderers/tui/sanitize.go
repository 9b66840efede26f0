package tui

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	inputPolicyOnce sync.Once
	inputPolicy     *bluemonday.Policy
)

// sanitizeInput strips any markup a user pasted into a text field. The strict
// policy escapes entities, so they are unescaped afterwards to keep plain text
// such as "D'Ávila & Filhos" intact.
func sanitizeInput(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return raw
	}
	return html.UnescapeString(inputSanitizer().Sanitize(raw))
}

func inputSanitizer() *bluemonday.Policy {
	inputPolicyOnce.Do(func() {
		inputPolicy = bluemonday.StrictPolicy()
	})
	return inputPolicy
}
