package pages

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-mwu-admin/internal/catalog"
	"github.com/goliatone/go-mwu-admin/pkg/form"
	"github.com/goliatone/go-mwu-admin/pkg/router"
	"github.com/goliatone/go-mwu-admin/pkg/ui"
)

// ErrUnexpectedResponse is reported when a create call succeeds without
// returning the new record.
var ErrUnexpectedResponse = errors.New("unexpected API response")

// Create collects a new record. The form is rebuilt on every visit so
// reference options are current.
type Create struct {
	frame
	entity catalog.Entity
	form   *form.Handle
}

// NewCreate builds the create page of an entity.
func NewCreate(entity catalog.Entity, deps Deps) *Create {
	return &Create{frame: newFrame(pageName(entity, catalog.PageCreate), deps), entity: entity}
}

func (p *Create) Setup(ctx context.Context) error {
	p.setup(ctx)
	p.title = "Create New " + p.entity.Singular
	return nil
}

func (p *Create) Refresh(ctx context.Context, _ router.Params) {
	p.form = nil
	cache := p.loadRefs(ctx, p.entity.RefCollections(catalog.ModeCreate))

	handle, err := form.Render(p.entity.Schema(catalog.ModeCreate, p.title, cache), form.Actions{
		Save:   p.save,
		Cancel: p.cancel,
	})
	if err != nil {
		p.logger.Error("render form", zap.Error(err))
		p.deps.Dialogs.Error("Error", err.Error())
		return
	}
	handle.SetData(p.entity.Defaults())
	p.form = handle
}

// Form returns the current form, nil before the first visit.
func (p *Create) Form() *form.Handle {
	return p.form
}

func (p *Create) save() error {
	if p.form == nil {
		return errors.New("pages: no form rendered")
	}
	payload, err := p.entity.Payload(catalog.ModeCreate, p.form.GetData())
	if err != nil {
		p.deps.Dialogs.Error("Validation Error", err.Error())
		return err
	}

	schema := p.form.Schema()
	created, err := p.deps.Client.Collection(p.entity.Name).Create(p.context(), payload)
	if err != nil {
		p.reportAPIError("create "+p.entity.Singular, err, &schema)
		return err
	}
	if created.ID() == "" {
		message := created.String("message")
		if message == "" {
			message = fmt.Sprintf("%v: %v", ErrUnexpectedResponse, map[string]any(created))
		}
		p.deps.Dialogs.Error("API Error", message)
		return fmt.Errorf("%w: %s", ErrUnexpectedResponse, message)
	}

	p.logger.Info("record created", zap.String("id", created.ID()))
	p.deps.Dialogs.Info("Success", p.entity.Singular+" created successfully!")
	p.navigate(pageName(p.entity, catalog.PageList), nil)
	return nil
}

func (p *Create) cancel() error {
	p.navigate(pageName(p.entity, catalog.PageList), nil)
	return nil
}

func (p *Create) View() ui.View {
	return ui.View{
		Title: p.title,
		Toolbar: []ui.Button{{
			Label: "< Back to " + p.entity.Plural,
			Run:   func() { _ = p.cancel() },
		}},
		Form: p.form,
	}
}
