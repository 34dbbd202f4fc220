// Package tui is the line-oriented frontend: every page is printed as text
// and driven through survey prompts, which suits plain terminals and
// scripted sessions.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/goliatone/go-mwu-admin/pkg/form"
	"github.com/goliatone/go-mwu-admin/pkg/listview"
	"github.com/goliatone/go-mwu-admin/pkg/model"
	"github.com/goliatone/go-mwu-admin/pkg/ui"
)

// Name is the registry name of the frontend.
const Name = "prompt"

const (
	appTitle     = "MWU - Money With You"
	editLabel    = "Edit Fields"
	openLabel    = "Open..."
	quitLabel    = "Quit"
	backLabel    = "< Back"
	menuPageSize = 15
)

// Frontend runs a prompt loop over the visible page.
type Frontend struct {
	driver PromptDriver
	out    io.Writer
	theme  Theme
	logger *zap.Logger

	ctx context.Context
	// filled is the last form whose fields were prompted on arrival.
	filled *form.Handle
}

var _ ui.Frontend = (*Frontend)(nil)

// New constructs the frontend with the survey driver writing to stdout.
func New(opts ...Option) *Frontend {
	f := &Frontend{
		out:    os.Stdout,
		theme:  DefaultTheme,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	if f.driver == nil {
		f.driver = newSurveyDriver(f.out)
	}
	return f
}

func (f *Frontend) Name() string { return Name }

// Run prompts until the user quits, aborts input or ctx ends.
func (f *Frontend) Run(ctx context.Context, shell ui.Shell, start func(context.Context) error) error {
	f.ctx = ctx
	shell.OnNavigate(func(name string) {
		f.logger.Debug("navigate", zap.String("page", name))
	})
	if err := start(ctx); err != nil {
		return err
	}

	for {
		if ctx.Err() != nil {
			return nil
		}
		quit, err := f.step(ctx, shell)
		switch {
		case quit, errors.Is(err, ErrAborted):
			return nil
		case err != nil && ctx.Err() != nil:
			return nil
		case err != nil:
			return err
		}
	}
}

// Invalidate is a no-op: every step redraws the visible page.
func (f *Frontend) Invalidate() {
	f.logger.Debug("invalidate")
}

type entry struct {
	label string
	quit  bool
	run   func(ctx context.Context) error
}

func (f *Frontend) step(ctx context.Context, shell ui.Shell) (bool, error) {
	name := shell.Visible()
	view, ok := shell.View(name)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrNoView, name)
	}

	if err := f.show(ctx, view); err != nil {
		return false, err
	}
	if view.Form != nil && view.Form != f.filled {
		f.filled = view.Form
		if err := f.fill(ctx, view.Form); err != nil {
			return false, err
		}
	}

	entries := f.menu(view)
	labels := make([]string, len(entries))
	for i, e := range entries {
		labels[i] = e.label
	}
	index, err := f.driver.Select(ctx, SelectConfig{
		Message:  "Choose an action",
		Options:  labels,
		PageSize: menuPageSize,
	})
	if err != nil {
		return false, err
	}
	if index < 0 || index >= len(entries) {
		return false, nil
	}
	chosen := entries[index]
	if chosen.quit {
		return true, nil
	}
	return false, chosen.run(ctx)
}

func (f *Frontend) menu(view ui.View) []entry {
	var entries []entry
	for _, button := range view.Toolbar {
		entries = append(entries, entry{label: button.Label, run: runButton(button)})
	}

	if list := view.List; list != nil && list.Len() > 0 {
		if len(view.RowActions) == 0 {
			entries = append(entries, entry{label: openLabel, run: func(ctx context.Context) error {
				_, err := f.pickRow(ctx, list, "Open which row?")
				return err
			}})
		}
		for _, button := range view.RowActions {
			run := button.Run
			entries = append(entries, entry{label: button.Label, run: func(ctx context.Context) error {
				picked, err := f.pickRow(ctx, list, button.Label+" which row?")
				if err != nil || !picked {
					return err
				}
				if run != nil {
					run()
				}
				return nil
			}})
		}
	}

	if h := view.Form; h != nil {
		entries = append(entries, entry{label: editLabel, run: func(ctx context.Context) error {
			return f.fill(ctx, h)
		}})
		for _, action := range h.Actions() {
			entries = append(entries, entry{label: action.Label(), run: func(context.Context) error {
				if err := action.Invoke(); err != nil {
					f.logger.Debug("form action failed",
						zap.String("form", h.Title()),
						zap.String("action", action.Label()),
						zap.Error(err),
					)
				}
				return nil
			}})
		}
	}

	return append(entries, entry{label: quitLabel, quit: true})
}

func runButton(button ui.Button) func(context.Context) error {
	return func(context.Context) error {
		if button.Run != nil {
			button.Run()
		}
		return nil
	}
}

// pickRow selects a list row, which fires the view's selection callback.
// It reports false when the user backs out.
func (f *Frontend) pickRow(ctx context.Context, list *listview.View, message string) (bool, error) {
	rows := list.Rows()
	options := make([]string, 0, len(rows)+1)
	for _, row := range rows {
		options = append(options, strings.Join(row, " | "))
	}
	options = append(options, backLabel)

	index, err := f.driver.Select(ctx, SelectConfig{
		Message:  message,
		Options:  options,
		PageSize: menuPageSize,
	})
	if err != nil {
		return false, err
	}
	if index < 0 || index >= len(rows) {
		return false, nil
	}
	list.Select(index)
	return true, nil
}

// show prints the page title and its table.
func (f *Frontend) show(ctx context.Context, view ui.View) error {
	text := fmt.Sprintf("\n=== %s | %s ===", appTitle, view.Title)
	if view.List != nil {
		text += "\n" + formatTable(view.List)
	}
	return f.driver.Info(ctx, text)
}

// formatTable renders rows as aligned columns.
func formatTable(list *listview.View) string {
	if list.Len() == 0 {
		return "(no records)"
	}
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(list.Headings(), "\t"))
	for _, row := range list.Rows() {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
	return strings.TrimRight(b.String(), "\n")
}

// fill prompts for every visible field. Read-only fields are printed.
func (f *Frontend) fill(ctx context.Context, h *form.Handle) error {
	for _, field := range h.Fields() {
		if err := f.prompt(ctx, h, field); err != nil {
			return err
		}
	}
	return nil
}

func (f *Frontend) prompt(ctx context.Context, h *form.Handle, field model.Field) error {
	label := field.DisplayLabel()
	current := h.Value(field.Key)

	if field.ReadOnly {
		return f.driver.Info(ctx, fmt.Sprintf("%s: %s", label, current))
	}

	var (
		value string
		err   error
	)
	switch field.Kind.(type) {
	case model.Password:
		value, err = f.driver.Password(ctx, InputConfig{Message: label})
	case model.Dropdown, model.IDDropdown:
		options := h.Options(field.Key)
		if len(options) == 0 {
			return f.driver.Info(ctx, fmt.Sprintf("%s %s: no options available", f.theme.WarningPrefix, label))
		}
		var index int
		index, err = f.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      options,
			DefaultIndex: indexOf(options, current),
			PageSize:     menuPageSize,
		})
		if err == nil && index >= 0 && index < len(options) {
			value = options[index]
		}
	default:
		value, err = f.driver.Input(ctx, InputConfig{Message: label, Default: current})
	}
	if err != nil {
		return err
	}
	if err := h.SetValue(field.Key, value); err != nil {
		f.logger.Debug("rejected form input", zap.String("field", field.Key), zap.Error(err))
	}
	return nil
}

func (f *Frontend) context() context.Context {
	if f.ctx != nil {
		return f.ctx
	}
	return context.Background()
}
