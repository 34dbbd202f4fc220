package screen

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/goliatone/go-mwu-admin/pkg/listview"
	"github.com/goliatone/go-mwu-admin/pkg/ui"
)

// boundTable mirrors a list view in a tview table. Row 0 holds the headings.
type boundTable struct {
	view     *listview.View
	table    *tview.Table
	detached bool
}

// bindTable returns the binding of v, re-attaching it when the page is shown
// again. A view keeps one binding so its change listener is registered once.
func (f *Frontend) bindTable(v *listview.View) *boundTable {
	if bound, ok := f.tables[v]; ok {
		if bound.detached {
			bound.detached = false
			bound.fill()
		}
		return bound
	}
	bound := newBoundTable(v)
	f.tables[v] = bound
	return bound
}

func newBoundTable(v *listview.View) *boundTable {
	b := &boundTable{
		view:  v,
		table: tview.NewTable(),
	}
	b.table.SetBorders(false).
		SetSelectable(true, false).
		SetFixed(1, 0)
	b.table.SetBorder(true)
	b.table.SetSelectedFunc(func(row, _ int) {
		v.Select(row - 1)
	})

	v.OnChange(func() {
		if !b.detached {
			b.fill()
		}
	})
	b.fill()
	return b
}

func (b *boundTable) fill() {
	b.table.Clear()
	for col, heading := range b.view.Headings() {
		b.table.SetCell(0, col, tview.NewTableCell(heading).
			SetTextColor(tcell.ColorYellow).
			SetAttributes(tcell.AttrBold).
			SetSelectable(false).
			SetExpansion(1))
	}
	for r, row := range b.view.Rows() {
		for col, value := range row {
			b.table.SetCell(r+1, col, tview.NewTableCell(tview.Escape(value)).SetExpansion(1))
		}
	}
	if b.view.Len() > 0 {
		b.table.Select(1, 0)
	}
	b.table.ScrollToBeginning()
}

// current is the list index under the cursor, or -1.
func (b *boundTable) current() int {
	row, _ := b.table.GetSelection()
	if row < 1 || row > b.view.Len() {
		return -1
	}
	return row - 1
}

// wrap makes row actions act on the row under the cursor.
func (b *boundTable) wrap(buttons []ui.Button) []ui.Button {
	out := make([]ui.Button, 0, len(buttons))
	for _, button := range buttons {
		run := button.Run
		out = append(out, ui.Button{
			Label: button.Label,
			Run: func() {
				b.view.Select(b.current())
				if run != nil {
					run()
				}
			},
		})
	}
	return out
}

func (b *boundTable) detach() {
	b.detached = true
}
