package form

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-mwu-admin/pkg/model"
)

var (
	// ErrUnknownField is returned for keys that are not part of the schema.
	ErrUnknownField = errors.New("form: unknown field")
	// ErrReadOnly is returned when user input targets a read-only field.
	ErrReadOnly = errors.New("form: field is read-only")
	// ErrInvalidOption is returned when a dropdown receives an unlisted value.
	ErrInvalidOption = errors.New("form: value is not an option")
	// ErrActionUnavailable is returned when triggering an unbound button.
	ErrActionUnavailable = errors.New("form: action not available")
)

// Handle is a rendered form: the schema, its current state and its buttons.
type Handle struct {
	schema    model.FormSchema
	values    map[string]string
	// stored holds loaded dropdown values missing from the static options.
	stored    map[string]string
	actions   []Action
	listeners []func(key string)
}

// Render validates the schema and builds a handle with every slot empty.
// Configuration errors are returned here, never deferred to user input.
func Render(schema model.FormSchema, actions Actions) (*Handle, error) {
	if err := schema.Validate(); err != nil {
		return nil, fmt.Errorf("form: render %q: %w", schema.Title, err)
	}

	h := &Handle{
		schema:  schema,
		values:  make(map[string]string, len(schema.Fields)),
		stored:  make(map[string]string),
		actions: actions.ordered(),
	}
	for _, field := range schema.Fields {
		h.values[field.Key] = ""
	}
	return h, nil
}

// Title reports the form title.
func (h *Handle) Title() string {
	return h.schema.Title
}

// Schema returns the schema the handle was rendered from.
func (h *Handle) Schema() model.FormSchema {
	return h.schema
}

// Fields returns the visible fields in schema order.
func (h *Handle) Fields() []model.Field {
	out := make([]model.Field, 0, len(h.schema.Fields))
	for _, field := range h.schema.Fields {
		if field.Hidden {
			continue
		}
		out = append(out, field)
	}
	return out
}

// Actions returns the bound buttons in render order.
func (h *Handle) Actions() []Action {
	return append([]Action(nil), h.actions...)
}

// Trigger invokes the button of the given kind.
func (h *Handle) Trigger(kind ActionKind) error {
	for _, action := range h.actions {
		if action.Kind == kind {
			return action.Invoke()
		}
	}
	return fmt.Errorf("%w: %s", ErrActionUnavailable, kind)
}

// Options returns the display options of a dropdown field. A Dropdown
// loaded with an unlisted value offers that value after the static options.
func (h *Handle) Options(key string) []string {
	field, ok := h.schema.Field(key)
	if !ok {
		return nil
	}
	switch kind := field.Kind.(type) {
	case model.Dropdown:
		options := append([]string(nil), kind.Options...)
		if stored, ok := h.stored[key]; ok {
			options = append(options, stored)
		}
		return options
	case model.IDDropdown:
		return kind.Options.Names()
	default:
		return nil
	}
}

// Value returns the display value of a field: the text of inputs, the
// selected option of dropdowns (the display name for IDDropdown).
func (h *Handle) Value(key string) string {
	return h.values[key]
}

// SetValue records user input for one field.
func (h *Handle) SetValue(key, display string) error {
	field, ok := h.schema.Field(key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, key)
	}
	if field.ReadOnly {
		return fmt.Errorf("%w: %q", ErrReadOnly, key)
	}
	if display != "" && !h.isOption(field, display) {
		return fmt.Errorf("%w: %q for %q", ErrInvalidOption, display, key)
	}
	if h.values[key] == display {
		return nil
	}
	h.values[key] = display
	h.notify(key)
	return nil
}

func (h *Handle) isOption(field model.Field, display string) bool {
	switch kind := field.Kind.(type) {
	case model.Dropdown:
		return contains(kind.Options, display) || h.stored[field.Key] == display
	case model.IDDropdown:
		_, ok := kind.Options.ID(display)
		return ok
	default:
		return true
	}
}

// SetData populates every slot from an entity or a defaults map. IDDropdown
// fields select the display name of the given id, or nothing when the id has
// no option. Dropdown fields select their first option when the value is
// empty and keep any other value, listed or not. Other fields take the
// value's display form. Keys absent from values become empty.
func (h *Handle) SetData(values map[string]any) {
	clear(h.stored)
	for _, field := range h.schema.Fields {
		display := displayFor(field, values[field.Key])
		if kind, ok := field.Kind.(model.Dropdown); ok && display != "" && !contains(kind.Options, display) {
			h.stored[field.Key] = display
		}
		h.values[field.Key] = display
	}
	h.notify("")
}

func displayFor(field model.Field, raw any) string {
	text := model.FormatValue(raw)
	switch kind := field.Kind.(type) {
	case model.IDDropdown:
		if name, ok := kind.Options.Name(text); ok {
			return name
		}
		return ""
	case model.Dropdown:
		if text == "" && len(kind.Options) > 0 {
			return kind.Options[0]
		}
		return text
	default:
		return text
	}
}

// GetData returns the value of every slot, hidden fields included.
// IDDropdown fields return the selected id.
func (h *Handle) GetData() map[string]string {
	out := make(map[string]string, len(h.schema.Fields))
	for _, field := range h.schema.Fields {
		display := h.values[field.Key]
		if kind, ok := field.Kind.(model.IDDropdown); ok {
			id, _ := kind.Options.ID(display)
			out[field.Key] = id
			continue
		}
		out[field.Key] = display
	}
	return out
}

// OnChange registers a listener called after state changes. key is the field
// that changed, or "" after SetData replaced every slot.
func (h *Handle) OnChange(fn func(key string)) {
	if fn != nil {
		h.listeners = append(h.listeners, fn)
	}
}

func (h *Handle) notify(key string) {
	for _, fn := range h.listeners {
		fn(key)
	}
}

func contains(options []string, value string) bool {
	for _, option := range options {
		if option == value {
			return true
		}
	}
	return false
}
