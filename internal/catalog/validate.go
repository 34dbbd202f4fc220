package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks the catalog for configuration errors: duplicate names,
// unknown kinds or types, dropdowns without options, references to unknown
// collections and defaults that do not satisfy their own type.
func (c *Catalog) Validate() error {
	if c == nil || len(c.Entities) == 0 {
		return errors.New("no entities declared")
	}

	seen := make(map[string]struct{}, len(c.Entities))
	for _, entity := range c.Entities {
		if entity.Name == "" {
			return errors.New("entity with empty name")
		}
		if _, exists := seen[entity.Name]; exists {
			return fmt.Errorf("duplicate entity %q", entity.Name)
		}
		seen[entity.Name] = struct{}{}
	}

	for _, entity := range c.Entities {
		if err := c.validateEntity(entity, seen); err != nil {
			return fmt.Errorf("entity %q: %w", entity.Name, err)
		}
	}
	return nil
}

func (c *Catalog) validateEntity(entity Entity, entities map[string]struct{}) error {
	if len(entity.Columns) == 0 {
		return errors.New("no columns declared")
	}
	if entity.Columns[0].Key != "id" {
		return errors.New("first column must be id")
	}

	columns := make(map[string]struct{}, len(entity.Columns))
	for idx, column := range entity.Columns {
		key := strings.TrimSpace(column.Key)
		if key == "" {
			return fmt.Errorf("column %d has an empty key", idx)
		}
		if _, exists := columns[key]; exists {
			return fmt.Errorf("duplicate column %q", key)
		}
		columns[key] = struct{}{}
		if column.Ref == nil {
			continue
		}
		if column.Ref.Field == "" || column.Ref.Display == "" {
			return fmt.Errorf("column %q: reference needs field and display", key)
		}
		if _, ok := entities[column.Ref.Collection]; !ok {
			return fmt.Errorf("column %q: unknown collection %q", key, column.Ref.Collection)
		}
	}

	for _, field := range entity.Fields {
		if field.Mode != "" && field.Mode != ModeCreate && field.Mode != ModeUpdate {
			return fmt.Errorf("field %q: unknown mode %q", field.Key, field.Mode)
		}
	}

	for _, mode := range []Mode{ModeCreate, ModeUpdate} {
		keys := make(map[string]struct{})
		for idx, field := range entity.FieldsFor(mode) {
			if strings.TrimSpace(field.Key) == "" {
				return fmt.Errorf("%s form: field %d has an empty key", mode, idx)
			}
			if _, exists := keys[field.Key]; exists {
				return fmt.Errorf("%s form: duplicate field %q", mode, field.Key)
			}
			keys[field.Key] = struct{}{}
			if err := validateField(field, entities); err != nil {
				return fmt.Errorf("%s form: field %q: %w", mode, field.Key, err)
			}
		}
	}
	return nil
}

func validateField(field Field, entities map[string]struct{}) error {
	switch field.Kind {
	case KindEntry, KindPassword:
		if len(field.Options) > 0 {
			return fmt.Errorf("kind %q takes no options", field.Kind)
		}
	case KindDropdown:
		if len(field.Options) == 0 {
			return errors.New("dropdown without options")
		}
	case KindIDDropdown:
		if field.Ref == nil || field.Ref.Collection == "" || field.Ref.Display == "" {
			return errors.New("id_dropdown needs a reference with collection and display")
		}
		if _, ok := entities[field.Ref.Collection]; !ok {
			return fmt.Errorf("unknown collection %q", field.Ref.Collection)
		}
	default:
		return fmt.Errorf("unknown kind %q", field.Kind)
	}

	switch field.Type {
	case TypeString, TypeDecimal, TypeBool, TypeUUID, TypeDate:
	default:
		return fmt.Errorf("unknown type %q", field.Type)
	}

	if field.Default != "" {
		if _, err := field.Coerce(field.Default); err != nil {
			return fmt.Errorf("default %q: %w", field.Default, err)
		}
		if field.Kind == KindDropdown && !contains(field.Options, field.Default) {
			return fmt.Errorf("default %q is not an option", field.Default)
		}
	}
	return nil
}

func contains(options []string, value string) bool {
	for _, option := range options {
		if option == value {
			return true
		}
	}
	return false
}
