package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goliatone/go-regform/pkg/form"
)

// ReportName is the registry name of the text report renderer.
const ReportName = "report"

// Report renders the currently visible errors of a form as plain text, one
// "field: message" line per message. Form level messages use the "form"
// prefix. A form without visible errors renders "ok".
type Report struct{}

// NewReport returns the text report renderer.
func NewReport() *Report {
	return &Report{}
}

// Name implements Renderer.
func (*Report) Name() string { return ReportName }

// ContentType implements Renderer.
func (*Report) ContentType() string { return "text/plain; charset=utf-8" }

// Render implements Renderer. Values in options are applied to the form
// before the report is produced.
func (*Report) Render(ctx context.Context, f *form.Form, options RenderOptions) ([]byte, error) {
	if f == nil {
		return nil, fmt.Errorf("render: form is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ApplyValues(f, options.Values); err != nil {
		return nil, err
	}

	mapping := VisibleErrors(f, options.Projector())
	var buf bytes.Buffer
	if mapping.Empty() {
		buf.WriteString("ok\n")
		return buf.Bytes(), nil
	}
	for _, name := range f.Fields() {
		for _, message := range mapping.Fields[name] {
			fmt.Fprintf(&buf, "%s: %s\n", name, message)
		}
	}
	for _, message := range mapping.Form {
		fmt.Fprintf(&buf, "form: %s\n", message)
	}
	return buf.Bytes(), nil
}

// ApplyValues sets each value on the form in declaration order.
func ApplyValues(f *form.Form, values map[string]any) error {
	if len(values) == 0 {
		return nil
	}
	known := make(map[string]struct{}, len(values))
	for _, name := range f.Fields() {
		known[name] = struct{}{}
	}
	for name := range values {
		if _, ok := known[name]; !ok {
			return fmt.Errorf("render: %w %q", form.ErrUnknownField, name)
		}
	}
	for _, name := range f.Fields() {
		value, ok := values[name]
		if !ok {
			continue
		}
		if err := f.Set(name, value); err != nil {
			return fmt.Errorf("render: %w", err)
		}
	}
	return nil
}
