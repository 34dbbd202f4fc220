// Package ui declares the contracts between pages and frontends. Pages
// describe what is on screen through View and report outcomes through
// Dialogs; frontends draw views and collect input.
package ui

import (
	"context"

	"github.com/goliatone/go-mwu-admin/pkg/form"
	"github.com/goliatone/go-mwu-admin/pkg/listview"
)

// Button is a page-level command such as "New" or "Trash".
type Button struct {
	Label string
	Run   func()
}

// View is everything a frontend needs to draw a page. Form and List are
// optional; a home page carries only buttons.
type View struct {
	Title   string
	Toolbar []Button
	Form    *form.Handle
	List    *listview.View
	// Row commands apply to the selected list row.
	RowActions []Button
}

// Viewer is implemented by pages that can be drawn.
type Viewer interface {
	View() View
}

// Dialogs reports outcomes to the user. Confirm runs onYes only when the user
// accepts; frontends may call it after the method returned.
type Dialogs interface {
	Error(title, message string)
	Warning(title, message string)
	Info(title, message string)
	Confirm(title, message string, onYes func())
}

// Display redraws the visible page after its view changed outside a
// navigation.
type Display interface {
	Invalidate()
}

// Shell is the navigation state a frontend draws from.
type Shell interface {
	Visible() string
	View(name string) (View, bool)
	OnNavigate(fn func(name string))
}

// Frontend draws pages and owns the terminal until Run returns. start is
// invoked once the frontend is ready to show dialogs and performs the first
// navigation.
type Frontend interface {
	Dialogs
	Display
	Name() string
	Run(ctx context.Context, shell Shell, start func(ctx context.Context) error) error
}
