// Package listview holds the state of a selectable table of entity rows.
// Frontends draw it and forward selection; pages fill it after each fetch.
package listview

import (
	"github.com/goliatone/go-mwu-admin/pkg/model"
)

// Column describes one table column. Heading falls back to a label derived
// from Key.
type Column struct {
	Key     string
	Heading string
}

// Title returns the column heading.
func (c Column) Title() string {
	if c.Heading != "" {
		return c.Heading
	}
	return model.DefaultLabeler(c.Key)
}

// Row is the display text of one entity, one cell per column. Column 0 holds
// the entity id.
type Row []string

// ID returns the first cell.
func (r Row) ID() string {
	if len(r) == 0 {
		return ""
	}
	return r[0]
}

// View is a table with at most one selected row.
type View struct {
	columns   []Column
	rows      []Row
	selected  int
	onSelect  func(Row)
	listeners []func()
}

// New builds an empty view with the given columns.
func New(columns []Column) *View {
	return &View{
		columns:  append([]Column(nil), columns...),
		selected: -1,
	}
}

// Columns returns the column descriptors.
func (v *View) Columns() []Column {
	return append([]Column(nil), v.columns...)
}

// Headings returns the column titles.
func (v *View) Headings() []string {
	out := make([]string, len(v.columns))
	for i, column := range v.columns {
		out[i] = column.Title()
	}
	return out
}

// SetItems replaces every row and clears the selection. Rows are padded or
// truncated to the column count.
func (v *View) SetItems(rows []Row) {
	v.rows = make([]Row, len(rows))
	for i, row := range rows {
		v.rows[i] = v.fit(row)
	}
	v.selected = -1
	v.changed()
}

func (v *View) fit(row Row) Row {
	out := make(Row, len(v.columns))
	copy(out, row)
	return out
}

// Clear removes every row.
func (v *View) Clear() {
	v.SetItems(nil)
}

// Rows returns a copy of the rows.
func (v *View) Rows() []Row {
	out := make([]Row, len(v.rows))
	for i, row := range v.rows {
		out[i] = append(Row(nil), row...)
	}
	return out
}

// Len reports the number of rows.
func (v *View) Len() int {
	return len(v.rows)
}

// OnSelect registers the selection callback. It receives the selected row, or
// nil when the selection is cleared.
func (v *View) OnSelect(fn func(Row)) {
	v.onSelect = fn
}

// OnChange registers a listener called after the rows change.
func (v *View) OnChange(fn func()) {
	if fn != nil {
		v.listeners = append(v.listeners, fn)
	}
}

// Select marks row i as selected and fires the selection callback. Out of
// range indexes clear the selection.
func (v *View) Select(i int) {
	if i < 0 || i >= len(v.rows) {
		v.ClearSelection()
		return
	}
	v.selected = i
	if v.onSelect != nil {
		v.onSelect(append(Row(nil), v.rows[i]...))
	}
}

// ClearSelection drops the selection and fires the callback with nil.
func (v *View) ClearSelection() {
	v.selected = -1
	if v.onSelect != nil {
		v.onSelect(nil)
	}
}

// Selected returns the selected row.
func (v *View) Selected() (Row, bool) {
	if v.selected < 0 || v.selected >= len(v.rows) {
		return nil, false
	}
	return append(Row(nil), v.rows[v.selected]...), true
}

func (v *View) changed() {
	for _, fn := range v.listeners {
		fn()
	}
}
