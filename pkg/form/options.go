package form

import (
	"log/slog"
	"time"
)

// Option configures a Form.
type Option func(*Form)

// WithNotifier sets the submit side effect.
func WithNotifier(notifier Notifier) Option {
	return func(f *Form) {
		f.notifier = notifier
	}
}

// WithTransformer rewrites validated values before they reach the notifier.
func WithTransformer(fn Transformer) Option {
	return func(f *Form) {
		f.transformer = fn
	}
}

// WithLogger overrides the structured logger (slog.Default by default).
func WithLogger(logger *slog.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithInitialValues replaces the empty starting values of the named fields.
// Reset returns fields to these values.
func WithInitialValues(values map[string]any) Option {
	return func(f *Form) {
		if len(values) == 0 {
			return
		}
		if f.prefill == nil {
			f.prefill = make(map[string]any, len(values))
		}
		for name, value := range values {
			f.prefill[name] = value
		}
	}
}

// WithClock overrides the submission timestamp source.
func WithClock(now func() time.Time) Option {
	return func(f *Form) {
		if now != nil {
			f.now = now
		}
	}
}

// WithIDGenerator overrides the submission id source (uuid by default).
func WithIDGenerator(fn func() string) Option {
	return func(f *Form) {
		if fn != nil {
			f.newID = fn
		}
	}
}
