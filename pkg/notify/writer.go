package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/goliatone/go-regform/pkg/form"
)

// Writer is a form.Notifier that writes the encoded submission followed by
// the rendered success message.
type Writer struct {
	out     io.Writer
	format  Format
	message *Message
	logger  *slog.Logger
	payload bool
	secrets []string
}

// Option configures a Writer.
type Option func(*Writer)

// WithFormat selects the payload serialization.
func WithFormat(format Format) Option {
	return func(w *Writer) {
		if format != "" {
			w.format = format
		}
	}
}

// WithMessage replaces the success message.
func WithMessage(message *Message) Option {
	return func(w *Writer) {
		if message != nil {
			w.message = message
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Writer) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithoutPayload only writes the success message.
func WithoutPayload() Option {
	return func(w *Writer) {
		w.payload = false
	}
}

// WithRedactedFields masks the named values in the written payload. The
// submission handed to other collaborators is left untouched.
func WithRedactedFields(names ...string) Option {
	return func(w *Writer) {
		w.secrets = append(w.secrets, names...)
	}
}

// NewWriter returns a notifier writing to out (stdout when nil).
func NewWriter(out io.Writer, options ...Option) (*Writer, error) {
	if out == nil {
		out = os.Stdout
	}
	message, err := NewMessage("", nil)
	if err != nil {
		return nil, err
	}
	w := &Writer{
		out:     out,
		format:  FormatJSON,
		message: message,
		logger:  slog.Default(),
		payload: true,
	}
	for _, opt := range options {
		if opt != nil {
			opt(w)
		}
	}
	return w, nil
}

// Notify implements form.Notifier.
func (w *Writer) Notify(ctx context.Context, submission form.Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	text, err := w.message.Render(submission)
	if err != nil {
		return err
	}

	if w.payload {
		payload, err := Encode(w.format, Redact(submission.Values, w.secrets...))
		if err != nil {
			return err
		}
		if len(payload) > 0 && payload[len(payload)-1] != '\n' {
			payload = append(payload, '\n')
		}
		if _, err := w.out.Write(payload); err != nil {
			return fmt.Errorf("notify: write payload: %w", err)
		}
	}
	if _, err := fmt.Fprintln(w.out, text); err != nil {
		return fmt.Errorf("notify: write message: %w", err)
	}

	w.logger.Info("registration submitted",
		"form", submission.FormID,
		"submission", submission.ID,
		"format", string(w.format),
	)
	return nil
}
