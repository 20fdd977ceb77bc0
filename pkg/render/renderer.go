package render

import (
	"context"

	"github.com/goliatone/go-regform/pkg/form"
)

// Renderer presents a live form to a user or report consumer and returns the
// bytes it produced (a serialized submission, a text report, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, f *form.Form, options RenderOptions) ([]byte, error)
}
