package tui

import (
	"log/slog"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-regform/pkg/notify"
)

// ThemeCommand toggles between the light and dark palette when typed at any
// text prompt.
const ThemeCommand = ":theme"

// Name is the registry name of the terminal renderer.
const Name = "tui"

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects how the accepted submission is serialized.
func WithOutputFormat(format notify.Format) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMaxAttempts bounds the number of submit attempts per session.
func WithMaxAttempts(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.maxAttempts = n
		}
	}
}

// WithManifest replaces the built-in theme manifest.
func WithManifest(manifest *theme.Manifest) Option {
	return func(r *Renderer) {
		if manifest != nil {
			r.manifest = manifest
		}
	}
}

// WithThemeSelector resolves manifests through a go-theme selector instead of
// the built-in manifest.
func WithThemeSelector(selector theme.ThemeSelector, name string) Option {
	return func(r *Renderer) {
		r.selector = selector
		r.themeName = name
	}
}

// WithDarkMode starts the session in the dark variant.
func WithDarkMode(dark bool) Option {
	return func(r *Renderer) {
		if dark {
			r.variant = VariantDark
		} else {
			r.variant = VariantLight
		}
	}
}

// WithoutColor disables ANSI colours.
func WithoutColor() Option {
	return func(r *Renderer) {
		r.plain = true
	}
}
