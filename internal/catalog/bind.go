package catalog

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-mwu-admin/pkg/apiclient"
	"github.com/goliatone/go-mwu-admin/pkg/form"
	"github.com/goliatone/go-mwu-admin/pkg/listview"
	"github.com/goliatone/go-mwu-admin/pkg/model"
	"github.com/goliatone/go-mwu-admin/pkg/refs"
)

// Schema builds the form schema of the given mode. IDDropdown options come
// from cache; collections missing from it yield empty option maps.
func (e Entity) Schema(mode Mode, title string, cache refs.Cache) model.FormSchema {
	fields := e.FieldsFor(mode)
	schema := model.FormSchema{Title: title, Fields: make([]model.Field, 0, len(fields))}
	for _, field := range fields {
		schema.Fields = append(schema.Fields, model.Field{
			Key:      field.Key,
			Label:    field.Label,
			Kind:     field.kind(cache),
			ReadOnly: field.ReadOnly,
			Hidden:   field.Hidden,
		})
	}
	return schema
}

func (f Field) kind(cache refs.Cache) model.FieldKind {
	switch f.Kind {
	case KindPassword:
		return model.Password{}
	case KindDropdown:
		return model.Dropdown{Options: append([]string(nil), f.Options...)}
	case KindIDDropdown:
		return model.IDDropdown{Options: cache.Index(f.Ref.Collection).Options(f.Ref.Display)}
	default:
		return model.Entry{}
	}
}

// Defaults returns the initial create form values.
func (e Entity) Defaults() map[string]any {
	values := make(map[string]any)
	for _, field := range e.FieldsFor(ModeCreate) {
		if field.Default != "" {
			values[field.Key] = field.Default
		}
	}
	return values
}

// FormData converts a fetched record into form values.
func (e Entity) FormData(mode Mode, record apiclient.Record) map[string]any {
	values := make(map[string]any, len(record))
	for _, field := range e.FieldsFor(mode) {
		if raw, ok := record[field.Key]; ok {
			values[field.Key] = field.FormValue(raw)
		}
	}
	return values
}

// Payload validates form values and converts them into a request body.
// Empty optional fields are omitted; on create, empty fields take their
// default first. The first failing field is reported as a
// *form.ValidationError.
func (e Entity) Payload(mode Mode, values map[string]string) (map[string]any, error) {
	payload := make(map[string]any)
	for _, field := range e.FieldsFor(mode) {
		if !field.Editable() {
			continue
		}
		text := values[field.Key]
		if field.Kind != KindPassword {
			text = strings.TrimSpace(text)
		}
		if text == "" && mode == ModeCreate {
			text = field.Default
		}
		label := field.DisplayLabel()
		if text == "" {
			if field.Required {
				return nil, &form.ValidationError{Field: label, Message: "is required"}
			}
			continue
		}
		// Updates may resend a stored value the option list does not know.
		if field.Kind == KindDropdown && mode == ModeCreate && !contains(field.Options, text) {
			return nil, &form.ValidationError{
				Field:   label,
				Message: fmt.Sprintf("must be one of %s", strings.Join(field.Options, ", ")),
			}
		}
		value, err := field.Coerce(text)
		if err != nil {
			return nil, &form.ValidationError{Field: label, Message: err.Error()}
		}
		payload[field.Key] = value
	}
	return payload, nil
}

// DisplayLabel returns the field label or one derived from the key.
func (f Field) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return model.DefaultLabeler(f.Key)
}

// ListColumns returns the list view columns.
func (e Entity) ListColumns() []listview.Column {
	out := make([]listview.Column, len(e.Columns))
	for i, column := range e.Columns {
		out[i] = listview.Column{Key: column.Key, Heading: column.Heading}
	}
	return out
}

// Rows renders records as list rows, resolving reference columns through
// cache.
func (e Entity) Rows(records []apiclient.Record, cache refs.Cache) []listview.Row {
	rows := make([]listview.Row, 0, len(records))
	for _, record := range records {
		row := make(listview.Row, len(e.Columns))
		for i, column := range e.Columns {
			if column.Ref != nil {
				id := record.String(column.Ref.Field)
				row[i] = cache.Index(column.Ref.Collection).DisplayName(id, column.Ref.Display, column.Ref.Fallback)
				continue
			}
			row[i] = model.FormatValue(record[column.Key])
		}
		rows = append(rows, row)
	}
	return rows
}

// Title returns the display value of a record for page titles.
func (e Entity) Title(record apiclient.Record) string {
	return record.String(e.Display)
}
