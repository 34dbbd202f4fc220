package screen

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"
)

const (
	buttonOK  = "OK"
	buttonYes = "Yes"
	buttonNo  = "No"
)

type dialog struct {
	name    string
	modal   *tview.Modal
	respond func(label string)
}

func (f *Frontend) Error(title, message string) {
	f.logger.Debug("error dialog", zap.String("title", title), zap.String("message", message))
	f.notice(title, message, tcell.ColorDarkRed)
}

func (f *Frontend) Warning(title, message string) {
	f.logger.Debug("warning dialog", zap.String("title", title), zap.String("message", message))
	f.notice(title, message, tcell.ColorOlive)
}

func (f *Frontend) Info(title, message string) {
	f.notice(title, message, tcell.ColorDarkBlue)
}

// Confirm asks a yes/no question; onYes runs after the dialog closes.
func (f *Frontend) Confirm(title, message string, onYes func()) {
	modal := f.modal(title, message, tcell.ColorDarkSlateGray, buttonYes, buttonNo)
	f.open(modal, func(label string) {
		if label == buttonYes && onYes != nil {
			onYes()
		}
	})
}

func (f *Frontend) notice(title, message string, color tcell.Color) {
	f.open(f.modal(title, message, color, buttonOK), nil)
}

func (f *Frontend) modal(title, message string, color tcell.Color, buttons ...string) *tview.Modal {
	modal := tview.NewModal().
		SetText(message).
		AddButtons(buttons).
		SetBackgroundColor(color)
	modal.SetTitle(" " + title + " ")
	return modal
}

// open stacks a modal over the current page. done receives the pressed
// button label, or "" when the dialog is dismissed with Escape.
func (f *Frontend) open(modal *tview.Modal, done func(label string)) {
	f.dialogID++
	d := dialog{name: fmt.Sprintf("dialog-%d", f.dialogID), modal: modal}
	d.respond = func(label string) {
		f.close(d)
		if done != nil {
			done(label)
		}
	}
	modal.SetDoneFunc(func(_ int, label string) { d.respond(label) })

	f.stack = append(f.stack, d)
	f.pages.AddPage(d.name, modal, false, true)
	f.app.SetFocus(modal)
}

func (f *Frontend) close(d dialog) {
	for i, open := range f.stack {
		if open.name == d.name {
			f.stack = append(f.stack[:i], f.stack[i+1:]...)
			break
		}
	}
	f.pages.RemovePage(d.name)

	if n := len(f.stack); n > 0 {
		f.app.SetFocus(f.stack[n-1].modal)
		return
	}
	if len(f.ring) > 0 {
		f.app.SetFocus(f.firstFocus())
	}
}

// OpenDialogs reports how many dialogs are open.
func (f *Frontend) OpenDialogs() int {
	return len(f.stack)
}
