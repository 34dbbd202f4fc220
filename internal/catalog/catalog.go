// Package catalog declares the administered entities: their API collection,
// list columns, form fields and input rules. The default catalog is embedded
// from catalog.yaml.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultDocument []byte

// Mode selects which form an entity field appears in.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeUpdate Mode = "update"
)

// Field kinds accepted in the catalog.
const (
	KindEntry      = "entry"
	KindPassword   = "password"
	KindDropdown   = "dropdown"
	KindIDDropdown = "id_dropdown"
)

// Value types used to validate input and coerce payloads.
const (
	TypeString  = "string"
	TypeDecimal = "decimal"
	TypeBool    = "bool"
	TypeUUID    = "uuid"
	TypeDate    = "date"
)

// Catalog is the ordered set of entities.
type Catalog struct {
	Entities []Entity `json:"entities" yaml:"entities"`

	index map[string]int
}

// Entity describes one API collection.
type Entity struct {
	Name     string `json:"name" yaml:"name"`
	Singular string `json:"singular" yaml:"singular"`
	Plural   string `json:"plural" yaml:"plural"`
	// Display is the record field used in titles and reference dropdowns.
	Display string `json:"display" yaml:"display"`
	// Trash enables the deleted-records page (restore, force delete).
	Trash bool `json:"trash" yaml:"trash"`
	// Audit adds the read-only id and timestamp fields to the update form.
	Audit   bool     `json:"audit" yaml:"audit"`
	Columns []Column `json:"columns" yaml:"columns"`
	Fields  []Field  `json:"fields" yaml:"fields"`
}

// Column is a list column. Ref columns show the display name of a referenced
// record instead of a raw value.
type Column struct {
	Key     string `json:"key" yaml:"key"`
	Heading string `json:"heading" yaml:"heading"`
	Ref     *Ref   `json:"ref" yaml:"ref"`
}

// Ref points at another collection. Field names the local key holding the id
// (columns only).
type Ref struct {
	Collection string `json:"collection" yaml:"collection"`
	Field      string `json:"field" yaml:"field"`
	Display    string `json:"display" yaml:"display"`
	Fallback   string `json:"fallback" yaml:"fallback"`
}

// Field is a form input.
type Field struct {
	Key      string   `json:"key" yaml:"key"`
	Label    string   `json:"label" yaml:"label"`
	Kind     string   `json:"kind" yaml:"kind"`
	Options  []string `json:"options" yaml:"options"`
	Ref      *Ref     `json:"ref" yaml:"ref"`
	Type     string   `json:"type" yaml:"type"`
	Required bool     `json:"required" yaml:"required"`
	Default  string   `json:"default" yaml:"default"`
	Mode     Mode     `json:"mode" yaml:"mode"`
	ReadOnly bool     `json:"readonly" yaml:"readonly"`
	Hidden   bool     `json:"hidden" yaml:"hidden"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Parse(defaultDocument, "catalog.yaml")
	})
	return defaultCatalog, defaultErr
}

// Parse decodes a JSON or YAML catalog document and validates it.
func Parse(data []byte, source string) (*Catalog, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("catalog: file %s is empty", source)
	}

	var cat Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		cat = Catalog{}
		if yamlErr := yaml.Unmarshal(data, &cat); yamlErr != nil {
			return nil, fmt.Errorf("catalog: parse %s: invalid JSON or YAML: %w", source, yamlErr)
		}
	}

	cat.normalise()
	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("catalog: %s: %w", source, err)
	}
	return &cat, nil
}

func (c *Catalog) normalise() {
	c.index = make(map[string]int, len(c.Entities))
	for i := range c.Entities {
		entity := &c.Entities[i]
		entity.Name = strings.TrimSpace(entity.Name)
		if entity.Singular == "" {
			entity.Singular = entity.Name
		}
		if entity.Plural == "" {
			entity.Plural = entity.Singular
		}
		if entity.Display == "" {
			entity.Display = "id"
		}
		for j := range entity.Fields {
			field := &entity.Fields[j]
			if field.Kind == "" {
				field.Kind = KindEntry
			}
			if field.Type == "" {
				field.Type = TypeString
			}
		}
		if _, exists := c.index[entity.Name]; !exists {
			c.index[entity.Name] = i
		}
	}
}

// Entity looks up an entity by name.
func (c *Catalog) Entity(name string) (Entity, bool) {
	if c == nil {
		return Entity{}, false
	}
	i, ok := c.index[name]
	if !ok {
		return Entity{}, false
	}
	return c.Entities[i], true
}

// Names lists entity names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.Entities))
	for i, entity := range c.Entities {
		names[i] = entity.Name
	}
	return names
}

// FieldsFor returns the fields of the given form in order. Update forms of
// audited entities are framed by the read-only id and timestamps.
func (e Entity) FieldsFor(mode Mode) []Field {
	var out []Field
	if mode == ModeUpdate && e.Audit {
		out = append(out, Field{Key: "id", Label: "ID", Kind: KindEntry, Type: TypeString, ReadOnly: true})
	}
	for _, field := range e.Fields {
		if field.Mode != "" && field.Mode != mode {
			continue
		}
		out = append(out, field)
	}
	if mode == ModeUpdate && e.Audit {
		for _, key := range []string{"created_at", "updated_at", "deleted_at"} {
			out = append(out, Field{Key: key, Kind: KindEntry, Type: TypeString, ReadOnly: true})
		}
	}
	return out
}

// Editable reports whether the field contributes to a payload.
func (f Field) Editable() bool {
	return !f.ReadOnly
}

// RefCollections lists the collections a form or the list needs, without
// duplicates, in first-use order.
func (e Entity) RefCollections(mode Mode) []string {
	var out []string
	seen := make(map[string]struct{})
	add := func(ref *Ref) {
		if ref == nil {
			return
		}
		if _, ok := seen[ref.Collection]; ok {
			return
		}
		seen[ref.Collection] = struct{}{}
		out = append(out, ref.Collection)
	}
	if mode == "" {
		for _, column := range e.Columns {
			add(column.Ref)
		}
		return out
	}
	for _, field := range e.FieldsFor(mode) {
		add(field.Ref)
	}
	return out
}

// PageName builds the router name of an entity page, e.g. "accounts.list".
func PageName(entity, page string) string {
	return entity + "." + page
}

// Page suffixes.
const (
	PageList   = "list"
	PageCreate = "create"
	PageUpdate = "update"
	PageTrash  = "trash"
)
