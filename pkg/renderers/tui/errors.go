package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoView is returned when the visible page cannot be drawn.
	ErrNoView = errors.New("tui: page has no view")
)
