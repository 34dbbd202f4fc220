package tui

import (
	"io"

	"go.uber.org/zap"
)

// Theme holds the prefixes printed in front of messages.
type Theme struct {
	InfoPrefix    string
	WarningPrefix string
	ErrorPrefix   string
}

// DefaultTheme is used unless WithTheme overrides it.
var DefaultTheme = Theme{
	InfoPrefix:    "[i]",
	WarningPrefix: "[!]",
	ErrorPrefix:   "[x]",
}

// Option configures the prompt frontend.
type Option func(*Frontend)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(f *Frontend) {
		if driver != nil {
			f.driver = driver
		}
	}
}

// WithOutput redirects tables and messages printed by the default driver.
func WithOutput(out io.Writer) Option {
	return func(f *Frontend) {
		if out != nil {
			f.out = out
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(f *Frontend) {
		f.theme = theme
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Frontend) {
		if logger != nil {
			f.logger = logger
		}
	}
}
