package tui

import (
	"fmt"

	"go.uber.org/zap"
)

func (f *Frontend) Error(title, message string) {
	f.say(f.theme.ErrorPrefix, title, message)
}

func (f *Frontend) Warning(title, message string) {
	f.say(f.theme.WarningPrefix, title, message)
}

func (f *Frontend) Info(title, message string) {
	f.say(f.theme.InfoPrefix, title, message)
}

// Confirm asks before running onYes. A failed prompt counts as No.
func (f *Frontend) Confirm(title, message string, onYes func()) {
	ok, err := f.driver.Confirm(f.context(), ConfirmConfig{
		Message: fmt.Sprintf("%s: %s", title, message),
	})
	if err != nil {
		f.logger.Debug("confirm prompt failed", zap.String("title", title), zap.Error(err))
		return
	}
	if ok && onYes != nil {
		onYes()
	}
}

func (f *Frontend) say(prefix, title, message string) {
	text := fmt.Sprintf("%s %s: %s", prefix, title, message)
	if err := f.driver.Info(f.context(), text); err != nil {
		f.logger.Debug("print message", zap.String("title", title), zap.Error(err))
	}
}
