package apiclient

import (
	"fmt"

	"github.com/goliatone/go-mwu-admin/pkg/model"
)

// Record is one decoded entity object.
type Record map[string]any

// ID returns the entity id as a string, or "" when absent.
func (r Record) ID() string {
	return r.String("id")
}

// String returns the display form of a field.
func (r Record) String(key string) string {
	if r == nil {
		return ""
	}
	return model.FormatValue(r[key])
}

// Has reports whether the field is present with a non-empty display value.
func (r Record) Has(key string) bool {
	return r.String(key) != ""
}

// DecodeRecords converts a decoded list response into records. nil decodes
// to an empty list; anything other than an array of objects is a DecodeError.
func DecodeRecords(value any) ([]Record, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []any:
		out := make([]Record, 0, len(v))
		for idx, item := range v {
			obj, ok := item.(map[string]any)
			if !ok {
				return nil, &DecodeError{Err: fmt.Errorf("item %d is %T, want object", idx, item)}
			}
			out = append(out, Record(obj))
		}
		return out, nil
	default:
		return nil, &DecodeError{Err: fmt.Errorf("response is %T, want array", value)}
	}
}

// DecodeRecord converts a decoded object response. nil decodes to a nil
// record.
func DecodeRecord(value any) (Record, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return Record(v), nil
	default:
		return nil, &DecodeError{Err: fmt.Errorf("response is %T, want object", value)}
	}
}
