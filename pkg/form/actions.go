package form

// ActionKind identifies a form button.
type ActionKind int

const (
	ActionSave ActionKind = iota
	ActionUpdate
	ActionDelete
	ActionCancel
)

func (k ActionKind) String() string {
	switch k {
	case ActionSave:
		return "Save"
	case ActionUpdate:
		return "Update"
	case ActionDelete:
		return "Delete"
	case ActionCancel:
		return "Cancel"
	default:
		return "Unknown"
	}
}

// ActionFunc is invoked when a button is pressed. Callbacks read the form
// through the handle; the returned error has already been reported to the
// user by the page and is surfaced for logging and tests.
type ActionFunc func() error

// Actions binds callbacks to the four form buttons. Nil callbacks are not
// rendered.
type Actions struct {
	Save   ActionFunc
	Update ActionFunc
	Delete ActionFunc
	Cancel ActionFunc
}

// Action is a rendered button.
type Action struct {
	Kind ActionKind
	run  ActionFunc
}

// Label is the button caption.
func (a Action) Label() string {
	return a.Kind.String()
}

// Invoke runs the bound callback.
func (a Action) Invoke() error {
	if a.run == nil {
		return nil
	}
	return a.run()
}

// ordered returns the bound actions in fixed order: Save, Update, Delete,
// Cancel.
func (a Actions) ordered() []Action {
	var out []Action
	for _, candidate := range []Action{
		{Kind: ActionSave, run: a.Save},
		{Kind: ActionUpdate, run: a.Update},
		{Kind: ActionDelete, run: a.Delete},
		{Kind: ActionCancel, run: a.Cancel},
	} {
		if candidate.run != nil {
			out = append(out, candidate)
		}
	}
	return out
}
