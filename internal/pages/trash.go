package pages

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-mwu-admin/internal/catalog"
	"github.com/goliatone/go-mwu-admin/pkg/listview"
	"github.com/goliatone/go-mwu-admin/pkg/router"
	"github.com/goliatone/go-mwu-admin/pkg/ui"
)

// Trash lists soft-deleted records and restores or permanently removes them.
type Trash struct {
	frame
	entity  catalog.Entity
	list    *listview.View
	toolbar []ui.Button
	rowOps  []ui.Button
}

// NewTrash builds the trash page of an entity.
func NewTrash(entity catalog.Entity, deps Deps) *Trash {
	return &Trash{frame: newFrame(pageName(entity, catalog.PageTrash), deps), entity: entity}
}

func (p *Trash) Setup(ctx context.Context) error {
	p.setup(ctx)
	p.title = p.entity.Plural + " Trash Bin"
	p.list = listview.New(p.entity.ListColumns())
	p.toolbar = []ui.Button{
		{Label: "< Back to " + p.entity.Plural, Run: func() { p.navigate(pageName(p.entity, catalog.PageList), nil) }},
		{Label: "Refresh", Run: func() {
			p.load(p.context())
			p.invalidate()
		}},
	}
	p.rowOps = []ui.Button{
		{Label: "Restore", Run: func() { _ = p.Restore() }},
		{Label: "Delete Permanently", Run: func() { _ = p.ForceDelete() }},
	}
	return nil
}

func (p *Trash) Refresh(ctx context.Context, _ router.Params) {
	p.load(ctx)
}

func (p *Trash) load(ctx context.Context) {
	cache := p.loadRefs(ctx, p.entity.RefCollections(""))
	records, err := p.deps.Client.Collection(p.entity.Name).ListDeleted(ctx)
	if err != nil {
		p.list.Clear()
		p.reportAPIError("load deleted "+p.entity.Plural, err, nil)
		return
	}
	p.list.SetItems(p.entity.Rows(records, cache))
}

// Rows exposes the list for tests and frontends.
func (p *Trash) Rows() *listview.View {
	return p.list
}

func (p *Trash) selected() (string, bool) {
	row, ok := p.list.Selected()
	if !ok || row.ID() == "" {
		p.deps.Dialogs.Warning("No Selection", fmt.Sprintf("Select a %s first.", p.entity.Singular))
		return "", false
	}
	return row.ID(), true
}

// Restore asks for confirmation and restores the selected record.
func (p *Trash) Restore() error {
	id, ok := p.selected()
	if !ok {
		return nil
	}
	var result error
	p.deps.Dialogs.Confirm("Confirm Restore",
		fmt.Sprintf("Restore %s ID %s?", p.entity.Singular, id),
		func() {
			result = p.apply("restore", id, p.entity.Singular+" restored successfully!", func(ctx context.Context) error {
				return p.deps.Client.Collection(p.entity.Name).Restore(ctx, id)
			})
		})
	return result
}

// ForceDelete asks for confirmation and permanently deletes the selected
// record.
func (p *Trash) ForceDelete() error {
	id, ok := p.selected()
	if !ok {
		return nil
	}
	var result error
	p.deps.Dialogs.Confirm("Confirm Permanent Delete",
		fmt.Sprintf("Permanently delete %s ID %s? This cannot be undone.", p.entity.Singular, id),
		func() {
			result = p.apply("permanently delete", id, p.entity.Singular+" permanently deleted!", func(ctx context.Context) error {
				return p.deps.Client.Collection(p.entity.Name).ForceDelete(ctx, id)
			})
		})
	return result
}

func (p *Trash) apply(action, id, success string, call func(ctx context.Context) error) error {
	ctx := p.context()
	if err := call(ctx); err != nil {
		p.reportAPIError(action+" "+p.entity.Singular, err, nil)
		return err
	}
	p.logger.Info("trash action", zap.String("action", action), zap.String("id", id))
	p.deps.Dialogs.Info("Success", success)
	p.load(ctx)
	p.invalidate()
	return nil
}

func (p *Trash) View() ui.View {
	return ui.View{
		Title:      p.title,
		Toolbar:    append([]ui.Button(nil), p.toolbar...),
		List:       p.list,
		RowActions: append([]ui.Button(nil), p.rowOps...),
	}
}
