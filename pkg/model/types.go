package model

// FieldKind is the closed set of widget variants a field can render as. The
// unexported marker keeps the set sealed to this package so renderers can
// switch exhaustively over Entry, Password, Dropdown and IDDropdown.
type FieldKind interface {
	kindName() string
}

// Entry is a free-text input.
type Entry struct{}

// Password is a masked free-text input.
type Password struct{}

// Dropdown selects one value out of a static list of options. The display
// label and the stored value are the same string.
type Dropdown struct {
	Options []string
}

// IDDropdown selects an entity by display name while storing its id.
type IDDropdown struct {
	Options *OptionMap
}

func (Entry) kindName() string      { return "entry" }
func (Password) kindName() string   { return "password" }
func (Dropdown) kindName() string   { return "dropdown" }
func (IDDropdown) kindName() string { return "id_dropdown" }

// KindName reports the canonical identifier of a field kind, or "" for nil.
func KindName(kind FieldKind) string {
	if kind == nil {
		return ""
	}
	return kind.kindName()
}

// Field describes one value slot of a form.
type Field struct {
	Key      string
	Label    string
	Kind     FieldKind
	ReadOnly bool
	// Hidden fields keep a value slot but are not rendered.
	Hidden bool
}

// DisplayLabel returns the label, falling back to a label derived from the key.
func (f Field) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return DefaultLabeler(f.Key)
}

// FormSchema is the ordered set of fields a form renders plus its title.
type FormSchema struct {
	Title  string
	Fields []Field
}

// Field looks up a descriptor by key.
func (s FormSchema) Field(key string) (Field, bool) {
	for _, field := range s.Fields {
		if field.Key == key {
			return field, true
		}
	}
	return Field{}, false
}

// Keys returns the field keys in schema order.
func (s FormSchema) Keys() []string {
	keys := make([]string, 0, len(s.Fields))
	for _, field := range s.Fields {
		keys = append(keys, field.Key)
	}
	return keys
}
