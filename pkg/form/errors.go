package form

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-mwu-admin/pkg/model"
)

// ValidationError reports client-side input problems detected before any
// request is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ErrorMapping splits server validation messages into field-level messages
// keyed by schema key and form-level messages.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MapServerErrors assigns server messages (keyed by dotted or slash paths
// such as "name", "body.name" or "/user_id") to schema fields. Paths that do
// not name a field become form-level messages so nothing is lost.
func MapServerErrors(schema model.FormSchema, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{Fields: make(map[string][]string)}
	if len(payload) == 0 {
		mapping.Fields = nil
		return mapping
	}

	keys := make(map[string]struct{}, len(schema.Fields))
	for _, field := range schema.Fields {
		keys[field.Key] = struct{}{}
	}

	paths := make([]string, 0, len(payload))
	for path := range payload {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		messages := normalizeMessages(payload[path])
		if len(messages) == 0 {
			continue
		}
		if key := matchField(path, keys); key != "" {
			mapping.Fields[key] = append(mapping.Fields[key], messages...)
			continue
		}
		mapping.Form = append(mapping.Form, messages...)
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

// Summary renders the mapping as dialog text, labelling field messages with
// the field labels from the schema.
func (m ErrorMapping) Summary(schema model.FormSchema) string {
	var lines []string
	lines = append(lines, m.Form...)
	for _, field := range schema.Fields {
		messages := m.Fields[field.Key]
		if len(messages) == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", field.DisplayLabel(), strings.Join(messages, ", ")))
	}
	return strings.Join(lines, "\n")
}

func matchField(path string, keys map[string]struct{}) string {
	segments := strings.FieldsFunc(strings.TrimSpace(path), func(r rune) bool {
		return r == '.' || r == '/' || r == '[' || r == ']'
	})
	for _, segment := range segments {
		if _, ok := keys[segment]; ok {
			return segment
		}
	}
	return ""
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}
	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
