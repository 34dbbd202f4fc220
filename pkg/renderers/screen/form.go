package screen

import (
	"slices"

	"github.com/rivo/tview"
	"go.uber.org/zap"

	"github.com/goliatone/go-mwu-admin/pkg/form"
	"github.com/goliatone/go-mwu-admin/pkg/model"
)

const (
	fieldWidth   = 48
	passwordMask = '*'
)

// boundForm mirrors a form handle in a tview form. Edits flow into the handle
// and handle changes flow back into the widgets; syncing breaks the loop.
type boundForm struct {
	handle  *form.Handle
	form    *tview.Form
	inputs  map[string]*tview.InputField
	drops   map[string]*tview.DropDown
	options map[string][]string
	syncing bool
	logger  *zap.Logger
}

func (f *Frontend) bindForm(h *form.Handle) *boundForm {
	if bound, ok := f.forms[h]; ok {
		return bound
	}
	bound := newBoundForm(h, f.logger)
	f.forms[h] = bound
	return bound
}

func newBoundForm(h *form.Handle, logger *zap.Logger) *boundForm {
	b := &boundForm{
		handle:  h,
		form:    tview.NewForm(),
		inputs:  make(map[string]*tview.InputField),
		drops:   make(map[string]*tview.DropDown),
		options: make(map[string][]string),
		logger:  logger,
	}
	b.form.SetBorder(true).SetTitle(" " + h.Title() + " ")
	b.form.SetButtonsAlign(tview.AlignCenter)

	// Widget constructors may fire their change callbacks.
	b.syncing = true
	for _, field := range h.Fields() {
		b.addField(field)
	}
	b.syncing = false

	for _, action := range h.Actions() {
		b.form.AddButton(action.Label(), func() {
			if err := action.Invoke(); err != nil {
				b.logger.Debug("form action failed",
					zap.String("form", h.Title()),
					zap.String("action", action.Label()),
					zap.Error(err),
				)
			}
		})
	}

	h.OnChange(b.sync)
	b.sync("")
	return b
}

func (b *boundForm) addField(field model.Field) {
	key := field.Key
	label := field.DisplayLabel()

	switch field.Kind.(type) {
	case model.Password:
		input := tview.NewInputField().
			SetLabel(label).
			SetFieldWidth(fieldWidth).
			SetMaskCharacter(passwordMask)
		b.bindInput(key, field.ReadOnly, input)
	case model.Dropdown, model.IDDropdown:
		drop := tview.NewDropDown().SetLabel(label)
		b.drops[key] = drop
		b.setOptions(key, b.handle.Options(key))
		b.form.AddFormItem(drop)
	default:
		input := tview.NewInputField().
			SetLabel(label).
			SetFieldWidth(fieldWidth)
		b.bindInput(key, field.ReadOnly, input)
	}
}

func (b *boundForm) bindInput(key string, readOnly bool, input *tview.InputField) {
	if readOnly {
		input.SetAcceptanceFunc(func(string, rune) bool { return false })
	}
	input.SetChangedFunc(func(text string) {
		if readOnly {
			return
		}
		b.edit(key, text)
	})
	b.inputs[key] = input
	b.form.AddFormItem(input)
}

func (b *boundForm) setOptions(key string, options []string) {
	b.options[key] = options
	b.drops[key].SetOptions(options, func(text string, _ int) {
		b.edit(key, text)
	})
}

// edit records widget input in the handle. Rejected input is undone by
// reloading the field from the handle.
func (b *boundForm) edit(key, text string) {
	if b.syncing {
		return
	}
	b.syncing = true
	err := b.handle.SetValue(key, text)
	b.syncing = false
	if err != nil {
		b.logger.Debug("rejected form input", zap.String("field", key), zap.Error(err))
		b.sync(key)
	}
}

// sync copies handle state into the widgets; key "" refreshes every field.
func (b *boundForm) sync(key string) {
	if b.syncing {
		return
	}
	b.syncing = true
	defer func() { b.syncing = false }()

	for k, input := range b.inputs {
		if key == "" || key == k {
			input.SetText(b.handle.Value(k))
		}
	}
	for k, drop := range b.drops {
		if key == "" || key == k {
			options := b.handle.Options(k)
			if !slices.Equal(options, b.options[k]) {
				b.setOptions(k, options)
			}
			drop.SetCurrentOption(indexOf(options, b.handle.Value(k)))
		}
	}
}

func indexOf(options []string, value string) int {
	if value == "" {
		return -1
	}
	for i, option := range options {
		if option == value {
			return i
		}
	}
	return -1
}
