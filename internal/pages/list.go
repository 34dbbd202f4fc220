package pages

import (
	"context"

	"go.uber.org/zap"

	"github.com/goliatone/go-mwu-admin/internal/catalog"
	"github.com/goliatone/go-mwu-admin/pkg/listview"
	"github.com/goliatone/go-mwu-admin/pkg/router"
	"github.com/goliatone/go-mwu-admin/pkg/ui"
)

// List shows the live records of an entity. Selecting a row opens the
// update page.
type List struct {
	frame
	entity  catalog.Entity
	list    *listview.View
	toolbar []ui.Button
}

// NewList builds the list page of an entity.
func NewList(entity catalog.Entity, deps Deps) *List {
	return &List{frame: newFrame(pageName(entity, catalog.PageList), deps), entity: entity}
}

func (p *List) Setup(ctx context.Context) error {
	p.setup(ctx)
	p.title = p.entity.Plural
	p.list = listview.New(p.entity.ListColumns())
	p.list.OnSelect(func(row listview.Row) {
		if row == nil || row.ID() == "" {
			return
		}
		p.navigate(pageName(p.entity, catalog.PageUpdate), router.Params{ParamID: row.ID()})
	})

	p.toolbar = []ui.Button{
		{Label: "< Back to Home", Run: func() { p.navigate(HomePage, nil) }},
		{Label: "New " + p.entity.Singular, Run: func() { p.navigate(pageName(p.entity, catalog.PageCreate), nil) }},
	}
	if p.entity.Trash {
		p.toolbar = append(p.toolbar, ui.Button{
			Label: "Trash Bin",
			Run:   func() { p.navigate(pageName(p.entity, catalog.PageTrash), nil) },
		})
	}
	p.toolbar = append(p.toolbar, ui.Button{Label: "Refresh", Run: func() {
		p.load(p.context())
		p.invalidate()
	}})
	return nil
}

// Refresh reloads the records and the reference data of the columns.
func (p *List) Refresh(ctx context.Context, _ router.Params) {
	p.load(ctx)
}

func (p *List) load(ctx context.Context) {
	cache := p.loadRefs(ctx, p.entity.RefCollections(""))
	records, err := p.deps.Client.Collection(p.entity.Name).List(ctx)
	if err != nil {
		p.list.Clear()
		p.reportAPIError("load "+p.entity.Plural, err, nil)
		return
	}
	p.list.SetItems(p.entity.Rows(records, cache))
	p.logger.Debug("list loaded", zap.Int("rows", len(records)))
}

// Rows exposes the list for tests and frontends.
func (p *List) Rows() *listview.View {
	return p.list
}

func (p *List) View() ui.View {
	return ui.View{
		Title:   p.title,
		Toolbar: append([]ui.Button(nil), p.toolbar...),
		List:    p.list,
	}
}
