// Package regform wires the registration definition, the form engine, the
// sanitizer and the writer notifier into a ready-to-use session.
package regform

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/notify"
	"github.com/goliatone/go-regform/pkg/openapi"
	"github.com/goliatone/go-regform/pkg/registration"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/sanitize"
)

// RenderOptions aliases render.RenderOptions for callers driving renderers.
type RenderOptions = render.RenderOptions

// Submission aliases form.Submission.
type Submission = form.Submission

// Session is a loaded registration with a live form and the renderers that
// can present it.
type Session struct {
	Registration registration.Registration
	Form         *form.Form
	Renderers    *render.Registry
}

type config struct {
	registration *registration.Registration
	configPath   string
	loadOptions  []registration.Option
	notifier     form.Notifier
	out          io.Writer
	format       notify.Format
	logger       *slog.Logger
	formOptions  []form.Option
	renderers    []render.Renderer
	sanitize     bool
}

// Option configures New.
type Option func(*config)

// WithRegistration uses an already loaded registration.
func WithRegistration(reg registration.Registration) Option {
	return func(c *config) {
		c.registration = &reg
	}
}

// WithConfigFile loads the registration from a JSON or YAML file instead of
// the embedded definition.
func WithConfigFile(path string) Option {
	return func(c *config) {
		c.configPath = path
	}
}

// WithLoadOptions forwards options to the registration loader.
func WithLoadOptions(options ...registration.Option) Option {
	return func(c *config) {
		c.loadOptions = append(c.loadOptions, options...)
	}
}

// WithNotifier replaces the default writer notifier.
func WithNotifier(notifier form.Notifier) Option {
	return func(c *config) {
		c.notifier = notifier
	}
}

// WithOutput sets where the default notifier writes (stdout by default).
func WithOutput(out io.Writer) Option {
	return func(c *config) {
		c.out = out
	}
}

// WithFormat selects the payload encoding of the default notifier. When
// unset the registration's notification format is used.
func WithFormat(format notify.Format) Option {
	return func(c *config) {
		c.format = format
	}
}

// WithLogger sets the logger shared by the form and the notifier.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithFormOptions appends raw form options (clock, id generator, prefill).
func WithFormOptions(options ...form.Option) Option {
	return func(c *config) {
		c.formOptions = append(c.formOptions, options...)
	}
}

// WithoutSanitizer submits free text exactly as typed.
func WithoutSanitizer() Option {
	return func(c *config) {
		c.sanitize = false
	}
}

// WithRenderers registers extra renderers next to the built-in report. A
// renderer named like the report replaces it.
func WithRenderers(renderers ...render.Renderer) Option {
	return func(c *config) {
		c.renderers = append(c.renderers, renderers...)
	}
}

// New loads the registration (embedded unless configured otherwise) and
// builds a form whose successful submits are sanitised and delivered to the
// notifier.
func New(options ...Option) (*Session, error) {
	cfg := config{
		out:      os.Stdout,
		logger:   slog.Default(),
		sanitize: true,
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	reg, err := cfg.load()
	if err != nil {
		return nil, err
	}

	notifier := cfg.notifier
	if notifier == nil {
		notifier, err = DefaultNotifier(reg, cfg.out, cfg.format, cfg.logger)
		if err != nil {
			return nil, err
		}
	}

	formOptions := []form.Option{
		form.WithNotifier(notifier),
		form.WithLogger(cfg.logger),
	}
	if cfg.sanitize {
		formOptions = append(formOptions, form.WithTransformer(sanitize.New(reg.Form).Transformer()))
	}
	formOptions = append(formOptions, cfg.formOptions...)

	f, err := form.New(reg.Form, formOptions...)
	if err != nil {
		return nil, fmt.Errorf("regform: %w", err)
	}

	renderers, err := render.NewRegistry(render.NewReport())
	if err != nil {
		return nil, fmt.Errorf("regform: %w", err)
	}
	for _, renderer := range cfg.renderers {
		if err := renderers.Replace(renderer); err != nil {
			return nil, fmt.Errorf("regform: %w", err)
		}
	}
	return &Session{Registration: reg, Form: f, Renderers: renderers}, nil
}

func (c config) load() (registration.Registration, error) {
	switch {
	case c.registration != nil:
		return *c.registration, nil
	case c.configPath != "":
		return registration.LoadFile(c.configPath, c.loadOptions...)
	default:
		return registration.Default(c.loadOptions...)
	}
}

// DefaultNotifier builds the writer notifier described by the registration:
// its payload format (unless format overrides it) and success message.
// Password values are masked in the written payload.
func DefaultNotifier(reg registration.Registration, out io.Writer, format notify.Format, logger *slog.Logger) (*notify.Writer, error) {
	if format == "" {
		parsed, err := notify.ParseFormat(reg.Notification.Format)
		if err != nil {
			return nil, fmt.Errorf("regform: %w", err)
		}
		format = parsed
	}
	message, err := notify.NewMessage(reg.Notification.Template, map[string]any{
		"organization": reg.Notification.Organization,
	})
	if err != nil {
		return nil, fmt.Errorf("regform: %w", err)
	}
	return notify.NewWriter(out,
		notify.WithFormat(format),
		notify.WithMessage(message),
		notify.WithLogger(logger),
		notify.WithRedactedFields(notify.SecretFields(reg.Form)...),
	)
}

// RenderOptions returns render options carrying the registration messages.
func (s *Session) RenderOptions(values map[string]any) render.RenderOptions {
	return render.RenderOptions{
		Values:   values,
		Messages: s.Registration.Messages,
	}
}

// Render presents the form through the renderer registered under name,
// applying values first.
func (s *Session) Render(ctx context.Context, name string, values map[string]any) ([]byte, error) {
	return s.Renderers.Render(ctx, name, s.Form, s.RenderOptions(values))
}

// Report renders the currently visible errors as text.
func (s *Session) Report(ctx context.Context) ([]byte, error) {
	return s.Render(ctx, render.ReportName, nil)
}

// Submit applies values and submits the form once.
func (s *Session) Submit(ctx context.Context, values map[string]any) (form.Outcome, error) {
	if err := render.ApplyValues(s.Form, values); err != nil {
		return form.Outcome{}, fmt.Errorf("regform: %w", err)
	}
	return s.Form.Submit(ctx)
}

// SchemaJSON returns the OpenAPI document of the registration form.
func (s *Session) SchemaJSON(options ...openapi.DocumentOption) ([]byte, error) {
	doc, err := openapi.Document(s.Registration.Form, options...)
	if err != nil {
		return nil, err
	}
	return openapi.MarshalJSON(doc)
}
