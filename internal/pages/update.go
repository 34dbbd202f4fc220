package pages

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-mwu-admin/internal/catalog"
	"github.com/goliatone/go-mwu-admin/pkg/form"
	"github.com/goliatone/go-mwu-admin/pkg/router"
	"github.com/goliatone/go-mwu-admin/pkg/ui"
)

// Update edits or soft-deletes the record named by the id parameter.
type Update struct {
	frame
	entity catalog.Entity
	id     string
	form   *form.Handle
}

// NewUpdate builds the update page of an entity.
func NewUpdate(entity catalog.Entity, deps Deps) *Update {
	return &Update{frame: newFrame(pageName(entity, catalog.PageUpdate), deps), entity: entity}
}

func (p *Update) Setup(ctx context.Context) error {
	p.setup(ctx)
	p.title = "Update " + p.entity.Singular
	return nil
}

// Refresh loads the record and rebuilds the form. Without a usable id, or
// when the record cannot be fetched, the form is dropped and the list page
// is shown instead.
func (p *Update) Refresh(ctx context.Context, params router.Params) {
	p.reset()

	raw, ok := params.Get(ParamID)
	if !ok {
		p.deps.Dialogs.Warning("Warning", fmt.Sprintf("No %s selected for update. Returning to list.", p.entity.Singular))
		p.back(ctx)
		return
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		p.deps.Dialogs.Error("Error", fmt.Sprintf("Invalid %s ID format: %s", p.entity.Singular, raw))
		p.back(ctx)
		return
	}

	cache := p.loadRefs(ctx, p.entity.RefCollections(catalog.ModeUpdate))
	record, err := p.deps.Client.Collection(p.entity.Name).Get(ctx, id.String())
	if err == nil && record == nil {
		err = fmt.Errorf("%w: empty record", ErrUnexpectedResponse)
	}
	if err != nil {
		p.reportAPIError("load "+p.entity.Singular+" details", err, nil)
		p.back(ctx)
		return
	}

	title := p.entity.Title(record)
	if title == "" {
		title = id.String()
	}
	p.title = fmt.Sprintf("Update %s - %s", p.entity.Singular, title)

	handle, err := form.Render(p.entity.Schema(catalog.ModeUpdate, p.title, cache), form.Actions{
		Update: p.update,
		Delete: p.delete,
		Cancel: p.cancel,
	})
	if err != nil {
		p.logger.Error("render form", zap.Error(err))
		p.deps.Dialogs.Error("Error", err.Error())
		p.back(ctx)
		return
	}
	handle.SetData(p.entity.FormData(catalog.ModeUpdate, record))
	p.id = id.String()
	p.form = handle
}

func (p *Update) reset() {
	p.id = ""
	p.form = nil
	p.title = "Update " + p.entity.Singular
}

func (p *Update) back(ctx context.Context) {
	p.reset()
	if err := p.deps.Navigator.ShowPage(ctx, pageName(p.entity, catalog.PageList), nil); err != nil {
		p.logger.Error("navigation failed", zap.Error(err))
	}
}

// Form returns the current form, nil when no record is loaded.
func (p *Update) Form() *form.Handle {
	return p.form
}

// ID returns the id of the loaded record.
func (p *Update) ID() string {
	return p.id
}

func (p *Update) update() error {
	if p.form == nil || p.id == "" {
		p.deps.Dialogs.Error("Error", fmt.Sprintf("No %s selected for update.", p.entity.Singular))
		return errors.New("pages: no record loaded")
	}
	payload, err := p.entity.Payload(catalog.ModeUpdate, p.form.GetData())
	if err != nil {
		p.deps.Dialogs.Error("Validation Error", err.Error())
		return err
	}

	schema := p.form.Schema()
	if _, err := p.deps.Client.Collection(p.entity.Name).Update(p.context(), p.id, payload); err != nil {
		p.reportAPIError("update "+p.entity.Singular, err, &schema)
		return err
	}
	p.logger.Info("record updated", zap.String("id", p.id))
	p.deps.Dialogs.Info("Success", p.entity.Singular+" updated successfully!")
	p.navigate(pageName(p.entity, catalog.PageList), nil)
	return nil
}

func (p *Update) delete() error {
	if p.form == nil || p.id == "" {
		p.deps.Dialogs.Error("Error", fmt.Sprintf("No %s selected for deletion.", p.entity.Singular))
		return errors.New("pages: no record loaded")
	}
	id := p.id
	var result error
	p.deps.Dialogs.Confirm("Confirm Delete",
		fmt.Sprintf("Are you sure you want to delete %s ID %s?", p.entity.Singular, id),
		func() {
			if err := p.deps.Client.Collection(p.entity.Name).Delete(p.context(), id); err != nil {
				p.reportAPIError("delete "+p.entity.Singular, err, nil)
				result = err
				return
			}
			p.logger.Info("record deleted", zap.String("id", id))
			p.deps.Dialogs.Info("Success", p.entity.Singular+" deleted successfully!")
			p.navigate(pageName(p.entity, catalog.PageList), nil)
		})
	return result
}

func (p *Update) cancel() error {
	p.navigate(pageName(p.entity, catalog.PageList), nil)
	return nil
}

func (p *Update) View() ui.View {
	return ui.View{
		Title: p.title,
		Toolbar: []ui.Button{{
			Label: "< Back to " + p.entity.Plural,
			Run:   func() { _ = p.cancel() },
		}},
		Form: p.form,
	}
}
