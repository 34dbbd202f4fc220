package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the input format of date fields.
const DateLayout = "2006-01-02"

// Coerce converts form text into the JSON value sent to the API. Decimals
// are sent as number literals with every digit kept.
func (f Field) Coerce(text string) (any, error) {
	text = strings.TrimSpace(text)
	switch f.Type {
	case TypeDecimal:
		d, err := decimal.NewFromString(text)
		if err != nil {
			return nil, errors.New("must be a number")
		}
		return json.Number(d.String()), nil
	case TypeBool:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return nil, errors.New("must be True or False")
		}
		return b, nil
	case TypeUUID:
		id, err := uuid.Parse(text)
		if err != nil {
			return nil, errors.New("must be a valid id")
		}
		return id.String(), nil
	case TypeDate:
		if _, err := time.Parse(DateLayout, text); err != nil {
			return nil, fmt.Errorf("must be a date formatted as YYYY-MM-DD")
		}
		return text, nil
	default:
		return text, nil
	}
}

// FormValue converts a record value into what the form expects. Booleans
// become the "True"/"False" dropdown options and date fields drop any time
// component.
func (f Field) FormValue(raw any) any {
	switch f.Type {
	case TypeBool:
		switch v := raw.(type) {
		case bool:
			if v {
				return "True"
			}
			return "False"
		case string:
			if b, err := strconv.ParseBool(v); err == nil {
				return f.FormValue(b)
			}
		}
	case TypeDate:
		if s, ok := raw.(string); ok && len(s) > len(DateLayout) && s[len(DateLayout)] == 'T' {
			return s[:len(DateLayout)]
		}
	}
	return raw
}
