// Package pages implements the screens of the admin client on top of the
// page framework: a home page plus list, create, update and trash pages for
// every catalog entity.
package pages

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-mwu-admin/internal/catalog"
	"github.com/goliatone/go-mwu-admin/pkg/apiclient"
	"github.com/goliatone/go-mwu-admin/pkg/form"
	"github.com/goliatone/go-mwu-admin/pkg/model"
	"github.com/goliatone/go-mwu-admin/pkg/refs"
	"github.com/goliatone/go-mwu-admin/pkg/router"
	"github.com/goliatone/go-mwu-admin/pkg/ui"
)

// HomePage is the name of the landing page.
const HomePage = "home"

// ParamID is the navigation parameter naming the entity to edit.
const ParamID = "id"

// Navigator switches pages.
type Navigator interface {
	ShowPage(ctx context.Context, name string, params router.Params) error
}

// Deps are the collaborators every page shares.
type Deps struct {
	Client    *apiclient.Client
	Resolver  *refs.Resolver
	Navigator Navigator
	Dialogs   ui.Dialogs
	Display   ui.Display
	Logger    *zap.Logger
}

func (d Deps) validate() error {
	switch {
	case d.Client == nil:
		return errors.New("pages: api client is required")
	case d.Navigator == nil:
		return errors.New("pages: navigator is required")
	case d.Dialogs == nil:
		return errors.New("pages: dialogs are required")
	}
	return nil
}

// frame carries the state common to all pages.
type frame struct {
	name    string
	title   string
	visible bool
	deps    Deps
	logger  *zap.Logger
	// ctx is the context handed to Setup; button callbacks run under it.
	ctx context.Context
}

func newFrame(name string, deps Deps) frame {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return frame{name: name, deps: deps, logger: logger.With(zap.String("page", name))}
}

func (f *frame) Name() string { return f.name }

func (f *frame) Show() { f.visible = true }

func (f *frame) Hide() { f.visible = false }

// Visible reports whether the router shows the page.
func (f *frame) Visible() bool { return f.visible }

// Title is the window title of the page.
func (f *frame) Title() string { return f.title }

func (f *frame) setup(ctx context.Context) {
	f.ctx = ctx
}

func (f *frame) context() context.Context {
	if f.ctx == nil {
		return context.Background()
	}
	return f.ctx
}

func (f *frame) navigate(name string, params router.Params) {
	if err := f.deps.Navigator.ShowPage(f.context(), name, params); err != nil {
		f.logger.Error("navigation failed", zap.String("target", name), zap.Error(err))
		f.deps.Dialogs.Error("Error", err.Error())
	}
}

func (f *frame) invalidate() {
	if f.deps.Display != nil {
		f.deps.Display.Invalidate()
	}
}

// loadRefs fills a reference cache, warning the user about collections that
// could not be loaded.
func (f *frame) loadRefs(ctx context.Context, collections []string) refs.Cache {
	if len(collections) == 0 || f.deps.Resolver == nil {
		return refs.Cache{}
	}
	cache, err := f.deps.Resolver.Load(ctx, collections...)
	if err != nil {
		var warning *refs.LoadWarning
		if errors.As(err, &warning) {
			f.deps.Dialogs.Warning("Data Load Warning", fmt.Sprintf("Could not load all reference data: %s", describe(err, nil)))
		} else {
			f.deps.Dialogs.Warning("Data Load Warning", err.Error())
		}
	}
	return cache
}

// reportAPIError shows a failed call. Validation details are mapped onto the
// schema's field labels when one is given.
func (f *frame) reportAPIError(action string, err error, schema *model.FormSchema) {
	f.logger.Warn("api call failed", zap.String("action", action), zap.Error(err))
	f.deps.Dialogs.Error("API Error", fmt.Sprintf("Failed to %s: %s", action, describe(err, schema)))
}

// describe renders an error for a dialog.
func describe(err error, schema *model.FormSchema) string {
	var (
		httpErr      *apiclient.HTTPError
		transportErr *apiclient.TransportError
		decodeErr    *apiclient.DecodeError
		warning      *refs.LoadWarning
	)
	switch {
	case errors.As(err, &warning):
		return warning.Error()
	case errors.As(err, &httpErr):
		if schema != nil && len(httpErr.Fields) > 0 {
			if summary := form.MapServerErrors(*schema, httpErr.Fields).Summary(*schema); summary != "" {
				return httpErr.Message + "\n" + summary
			}
		}
		return httpErr.Error()
	case errors.As(err, &transportErr):
		if transportErr.Timeout() {
			return "the server did not answer in time"
		}
		return fmt.Sprintf("could not reach the server: %v", transportErr.Err)
	case errors.As(err, &decodeErr):
		return decodeErr.Error()
	default:
		return err.Error()
	}
}

// pageName is shorthand for catalog.PageName.
func pageName(entity catalog.Entity, page string) string {
	return catalog.PageName(entity.Name, page)
}
