package pages

import (
	"context"

	"github.com/goliatone/go-mwu-admin/internal/catalog"
	"github.com/goliatone/go-mwu-admin/pkg/router"
	"github.com/goliatone/go-mwu-admin/pkg/ui"
)

// Home links to the list page of every entity.
type Home struct {
	frame
	entities []catalog.Entity
	buttons  []ui.Button
}

// NewHome builds the landing page.
func NewHome(cat *catalog.Catalog, deps Deps) *Home {
	return &Home{frame: newFrame(HomePage, deps), entities: cat.Entities}
}

func (h *Home) Setup(ctx context.Context) error {
	h.setup(ctx)
	h.title = "MWU Administration Panel"
	h.buttons = make([]ui.Button, 0, len(h.entities))
	for _, entity := range h.entities {
		target := pageName(entity, catalog.PageList)
		h.buttons = append(h.buttons, ui.Button{
			Label: entity.Plural,
			Run:   func() { h.navigate(target, nil) },
		})
	}
	return nil
}

func (h *Home) Refresh(context.Context, router.Params) {}

func (h *Home) View() ui.View {
	return ui.View{Title: h.title, Toolbar: append([]ui.Button(nil), h.buttons...)}
}
