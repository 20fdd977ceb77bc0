package openapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-regform/pkg/model"
)

// DocumentOptions tunes the generated document.
type DocumentOptions struct {
	Version string
	Path    string
}

// DocumentOption mutates DocumentOptions.
type DocumentOption func(*DocumentOptions)

// WithAPIVersion sets info.version.
func WithAPIVersion(version string) DocumentOption {
	return func(opts *DocumentOptions) {
		opts.Version = version
	}
}

// WithPath sets the submission path; defaults to "/<form id>".
func WithPath(path string) DocumentOption {
	return func(opts *DocumentOptions) {
		opts.Path = path
	}
}

// Document wraps the form schema into a minimal OpenAPI document with one
// POST operation accepting the submission payload.
func Document(form model.FormModel, options ...DocumentOption) (*openapi3.T, error) {
	cfg := DocumentOptions{Version: "1.0.0", Path: "/" + strings.TrimSpace(form.ID)}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	schema, err := Schema(form)
	if err != nil {
		return nil, err
	}

	title := form.Title
	if title == "" {
		title = form.ID
	}
	name := componentName(form.ID)

	requestBody := openapi3.NewRequestBody().
		WithRequired(true).
		WithJSONSchemaRef(openapi3.NewSchemaRef("#/components/schemas/"+name, schema))

	operation := openapi3.NewOperation()
	operation.OperationID = "submit" + name
	operation.Summary = "Submit " + title
	operation.RequestBody = &openapi3.RequestBodyRef{Value: requestBody}
	operation.Responses = openapi3.NewResponses(
		openapi3.WithStatus(http.StatusCreated, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().WithDescription("submission accepted"),
		}),
		openapi3.WithStatus(http.StatusUnprocessableEntity, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().WithDescription("validation failed"),
		}),
	)

	doc := &openapi3.T{
		OpenAPI: Version,
		Info: &openapi3.Info{
			Title:   title,
			Version: cfg.Version,
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{name: openapi3.NewSchemaRef("", schema)},
		},
	}
	doc.AddOperation(cfg.Path, http.MethodPost, operation)
	return doc, nil
}

func componentName(id string) string {
	var b strings.Builder
	upper := true
	for _, r := range id {
		switch {
		case r == '-' || r == '_' || r == ' ' || r == '.':
			upper = true
		case upper:
			b.WriteString(strings.ToUpper(string(r)))
			upper = false
		default:
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "Form"
	}
	return b.String()
}

// MarshalJSON renders the document as indented JSON.
func MarshalJSON(doc *openapi3.T) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("openapi: document is required")
	}
	return marshalIndent(doc)
}
