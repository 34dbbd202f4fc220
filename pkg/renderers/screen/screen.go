// Package screen is the full-screen frontend: pages are drawn with tview
// widgets bound to form handles and list views, and dialogs are modal
// overlays.
package screen

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"github.com/goliatone/go-mwu-admin/pkg/form"
	"github.com/goliatone/go-mwu-admin/pkg/listview"
	"github.com/goliatone/go-mwu-admin/pkg/ui"
)

// Name is the registry name of the frontend.
const Name = "screen"

const (
	contentPage = "content"
	appTitle    = "MWU - Money With You"
	footerText  = "Tab/Shift-Tab: move within a pane   Ctrl-N/Ctrl-P: next/previous pane   Enter: select   Ctrl-C: quit"
)

// Option customises the frontend.
type Option func(*Frontend)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Frontend) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithScreen runs the application on the given screen, e.g. a simulation
// screen in tests.
func WithScreen(screen tcell.Screen) Option {
	return func(f *Frontend) {
		f.screen = screen
	}
}

// Frontend draws pages with tview.
type Frontend struct {
	app     *tview.Application
	pages   *tview.Pages
	header  *tview.TextView
	content *tview.Flex
	footer  *tview.TextView
	screen  tcell.Screen
	shell   ui.Shell
	logger  *zap.Logger

	// Form widgets are bound once per handle and reused across redraws of the
	// same page state. List bindings live as long as their view.
	forms  map[*form.Handle]*boundForm
	tables map[*listview.View]*boundTable

	ring     []tview.Primitive
	stack    []dialog
	dialogID int
}

var _ ui.Frontend = (*Frontend)(nil)

// New builds the frontend and its static layout.
func New(opts ...Option) *Frontend {
	f := &Frontend{
		app:    tview.NewApplication(),
		logger: zap.NewNop(),
		forms:  make(map[*form.Handle]*boundForm),
		tables: make(map[*listview.View]*boundTable),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	f.setupLayout()
	return f
}

func (f *Frontend) Name() string { return Name }

func (f *Frontend) setupLayout() {
	f.header = tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)
	f.header.SetBorder(true)

	f.content = tview.NewFlex().SetDirection(tview.FlexRow)

	f.footer = tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetText(footerText)

	root := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(f.header, 3, 0, false).
		AddItem(f.content, 0, 1, true).
		AddItem(f.footer, 1, 0, false)

	f.pages = tview.NewPages()
	f.pages.AddPage(contentPage, root, true, true)
	f.setHeader("")

	f.app.SetRoot(f.pages, true)
	f.app.EnableMouse(true)
	f.app.SetInputCapture(f.captureKeys)
	if f.screen != nil {
		f.app.SetScreen(f.screen)
	}
}

// Run draws the first page and blocks until the user quits or ctx ends.
func (f *Frontend) Run(ctx context.Context, shell ui.Shell, start func(context.Context) error) error {
	f.shell = shell
	shell.OnNavigate(f.draw)
	if err := start(ctx); err != nil {
		return err
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			f.app.Stop()
		case <-done:
		}
	}()

	if err := f.app.Run(); err != nil {
		return fmt.Errorf("screen: %w", err)
	}
	return nil
}

// Invalidate redraws the visible page.
func (f *Frontend) Invalidate() {
	if f.shell == nil {
		return
	}
	f.draw(f.shell.Visible())
}

func (f *Frontend) setHeader(title string) {
	if title == "" {
		f.header.SetText(fmt.Sprintf("[::b]%s", appTitle))
		return
	}
	f.header.SetText(fmt.Sprintf("[::b]%s[::-]  |  %s", appTitle, tview.Escape(title)))
}

// draw replaces the content pane with the view of the named page.
func (f *Frontend) draw(name string) {
	view, ok := f.shell.View(name)
	if !ok {
		f.logger.Warn("page has no view", zap.String("page", name))
		return
	}
	f.logger.Debug("draw page", zap.String("page", name))
	f.render(view)
}

func (f *Frontend) render(view ui.View) {
	f.setHeader(view.Title)
	f.content.Clear()
	f.ring = f.ring[:0]

	if len(view.Toolbar) > 0 {
		toolbar := buttonBar(view.Toolbar)
		f.content.AddItem(toolbar, 3, 0, false)
		f.ring = append(f.ring, toolbar)
	}

	if view.List != nil {
		table := f.bindTable(view.List)
		f.content.AddItem(table.table, 0, 1, false)
		f.ring = append(f.ring, table.table)
		if len(view.RowActions) > 0 {
			actions := buttonBar(table.wrap(view.RowActions))
			f.content.AddItem(actions, 3, 0, false)
			f.ring = append(f.ring, actions)
		}
	}

	if view.Form != nil {
		bound := f.bindForm(view.Form)
		f.content.AddItem(bound.form, 0, 2, false)
		f.ring = append(f.ring, bound.form)
	}

	f.pruneBindings(view)

	if len(f.stack) == 0 && len(f.ring) > 0 {
		f.app.SetFocus(f.firstFocus())
	}
}

// firstFocus prefers the form, then the list, then the toolbar.
func (f *Frontend) firstFocus() tview.Primitive {
	var table tview.Primitive
	for _, p := range f.ring {
		if _, ok := p.(*tview.Table); ok {
			table = p
		}
	}
	if bound := f.currentForm(); bound != nil {
		return bound.form
	}
	if table != nil {
		return table
	}
	return f.ring[0]
}

func (f *Frontend) currentForm() *boundForm {
	for _, bound := range f.forms {
		return bound
	}
	return nil
}

func (f *Frontend) pruneBindings(view ui.View) {
	for h := range f.forms {
		if h != view.Form {
			delete(f.forms, h)
		}
	}
	for v, bound := range f.tables {
		if v != view.List {
			bound.detach()
		}
	}
}

func (f *Frontend) captureKeys(event *tcell.EventKey) *tcell.EventKey {
	if len(f.stack) > 0 || len(f.ring) == 0 {
		return event
	}
	switch event.Key() {
	case tcell.KeyCtrlN:
		f.cycleFocus(1)
		return nil
	case tcell.KeyCtrlP:
		f.cycleFocus(-1)
		return nil
	}
	return event
}

func (f *Frontend) cycleFocus(step int) {
	current := f.app.GetFocus()
	index := -1
	for i, p := range f.ring {
		if p == current || (p.HasFocus() && index < 0) {
			index = i
		}
	}
	next := (index + step + len(f.ring)) % len(f.ring)
	f.app.SetFocus(f.ring[next])
}

func buttonBar(buttons []ui.Button) *tview.Form {
	bar := tview.NewForm().SetHorizontal(true)
	for _, button := range buttons {
		run := button.Run
		bar.AddButton(button.Label, func() {
			if run != nil {
				run()
			}
		})
	}
	bar.SetBorderPadding(0, 0, 1, 1)
	return bar
}
