package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// TimestampLayout is the canonical display format for dates and timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

// timestampLayouts are the wire formats recognised as timestamps. Date-only
// strings are left untouched.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// FormatValue stringifies a decoded JSON value for display in a form or list.
func FormatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		if ts, ok := ParseTimestamp(v); ok {
			return ts.Format(TimestampLayout)
		}
		return v
	case time.Time:
		return v.Format(TimestampLayout)
	case *time.Time:
		if v == nil {
			return ""
		}
		return v.Format(TimestampLayout)
	case bool:
		return strconv.FormatBool(v)
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// ParseTimestamp recognises ISO-8601 timestamps as sent by the API.
func ParseTimestamp(raw string) (time.Time, bool) {
	if len(raw) < len("2006-01-02T15:04:05") || raw[10] != 'T' {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
