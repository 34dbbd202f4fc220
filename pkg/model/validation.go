package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	errFieldKeyMissing  = errors.New("model: field key is required")
	errFieldKindMissing = errors.New("model: field kind is required")
)

// SchemaError reports a configuration mistake in a FormSchema.
type SchemaError struct {
	Index int
	Key   string
	Err   error
}

func (e *SchemaError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("model: field #%d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("model: field %q: %v", e.Key, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// Validate checks that every field has a unique key and a usable kind.
func (s FormSchema) Validate() error {
	seen := make(map[string]struct{}, len(s.Fields))
	for idx, field := range s.Fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			return &SchemaError{Index: idx, Err: errFieldKeyMissing}
		}
		if _, exists := seen[key]; exists {
			return &SchemaError{Index: idx, Key: key, Err: errors.New("duplicate field key")}
		}
		seen[key] = struct{}{}

		if err := validateKind(field.Kind); err != nil {
			return &SchemaError{Index: idx, Key: key, Err: err}
		}
	}
	return nil
}

func validateKind(kind FieldKind) error {
	switch k := kind.(type) {
	case nil:
		return errFieldKindMissing
	case Entry, Password:
		return nil
	case Dropdown:
		seen := make(map[string]struct{}, len(k.Options))
		for _, option := range k.Options {
			if _, exists := seen[option]; exists {
				return fmt.Errorf("duplicate dropdown option %q", option)
			}
			seen[option] = struct{}{}
		}
		return nil
	case IDDropdown:
		if k.Options == nil {
			return errors.New("id dropdown requires an option map")
		}
		return nil
	default:
		return fmt.Errorf("unsupported field kind %T", kind)
	}
}
