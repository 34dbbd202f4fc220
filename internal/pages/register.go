package pages

import (
	"fmt"

	"github.com/goliatone/go-mwu-admin/internal/catalog"
	"github.com/goliatone/go-mwu-admin/pkg/router"
	"github.com/goliatone/go-mwu-admin/pkg/ui"
)

// Register adds the home page and every entity page of the catalog to the
// router.
func Register(r *router.Router, cat *catalog.Catalog, deps Deps) error {
	if cat == nil {
		return fmt.Errorf("pages: catalog is required")
	}
	if err := deps.validate(); err != nil {
		return err
	}

	if err := r.Register(NewHome(cat, deps)); err != nil {
		return err
	}
	for _, entity := range cat.Entities {
		entityPages := []router.Page{
			NewList(entity, deps),
			NewCreate(entity, deps),
			NewUpdate(entity, deps),
		}
		if entity.Trash {
			entityPages = append(entityPages, NewTrash(entity, deps))
		}
		for _, page := range entityPages {
			if err := r.Register(page); err != nil {
				return err
			}
		}
	}
	return nil
}

// Shell adapts a router to what frontends draw from.
type Shell struct {
	Router *router.Router
}

var _ ui.Shell = Shell{}

func (s Shell) Visible() string {
	return s.Router.Visible()
}

func (s Shell) View(name string) (ui.View, bool) {
	page, ok := s.Router.Page(name)
	if !ok {
		return ui.View{}, false
	}
	viewer, ok := page.(ui.Viewer)
	if !ok {
		return ui.View{}, false
	}
	return viewer.View(), true
}

func (s Shell) OnNavigate(fn func(name string)) {
	s.Router.OnNavigate(fn)
}
