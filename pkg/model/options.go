package model

// OptionMap is an ordered bijection between display names and ids used by
// IDDropdown fields. Insertion order is preserved for display. Re-adding an
// existing name keeps its position but takes the new id, so when two entities
// share a display name the last one added wins. Re-adding an existing id under
// a different name drops the old name, keeping the map a bijection.
type OptionMap struct {
	names  []string
	byName map[string]string
	byID   map[string]string
}

// NewOptionMap returns an empty map.
func NewOptionMap() *OptionMap {
	return &OptionMap{
		byName: make(map[string]string),
		byID:   make(map[string]string),
	}
}

// OptionMapOf builds a map from alternating name/id pairs, mostly for tests
// and static schemas.
func OptionMapOf(pairs ...string) *OptionMap {
	m := NewOptionMap()
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Add(pairs[i], pairs[i+1])
	}
	return m
}

// Add maps name to id. Empty names or ids are ignored.
func (m *OptionMap) Add(name, id string) {
	if m == nil || name == "" || id == "" {
		return
	}
	if m.byName == nil {
		m.byName = make(map[string]string)
		m.byID = make(map[string]string)
	}

	if prevName, ok := m.byID[id]; ok && prevName != name {
		m.removeName(prevName)
	}
	if prevID, ok := m.byName[name]; ok {
		delete(m.byID, prevID)
	} else {
		m.names = append(m.names, name)
	}
	m.byName[name] = id
	m.byID[id] = name
}

func (m *OptionMap) removeName(name string) {
	delete(m.byName, name)
	for i, existing := range m.names {
		if existing == name {
			m.names = append(m.names[:i], m.names[i+1:]...)
			return
		}
	}
}

// Names returns display names in insertion order.
func (m *OptionMap) Names() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.names...)
}

// Len reports the number of entries.
func (m *OptionMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.names)
}

// ID resolves a display name to its id.
func (m *OptionMap) ID(name string) (string, bool) {
	if m == nil {
		return "", false
	}
	id, ok := m.byName[name]
	return id, ok
}

// Name resolves an id to its display name.
func (m *OptionMap) Name(id string) (string, bool) {
	if m == nil {
		return "", false
	}
	name, ok := m.byID[id]
	return name, ok
}
