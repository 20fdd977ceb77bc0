package notify

import (
	"fmt"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-regform/pkg/form"
)

// DefaultMessage is the success message shown after a registration.
const DefaultMessage = "Membership registration successful! Welcome to {{ organization }}!"

// DefaultOrganization fills the organization variable of DefaultMessage.
const DefaultOrganization = "Code Geeks"

// Message renders the post-submit confirmation from a pongo2 template. The
// template sees the submission values under "values" plus "id", "form",
// "submitted_at" and any extra variables.
type Message struct {
	tpl   *pongo2.Template
	extra pongo2.Context
}

// NewMessage compiles source. An empty source falls back to DefaultMessage.
func NewMessage(source string, extra map[string]any) (*Message, error) {
	if strings.TrimSpace(source) == "" {
		source = DefaultMessage
	}
	tpl, err := pongo2.FromString(source)
	if err != nil {
		return nil, fmt.Errorf("notify: compile message template: %w", err)
	}
	ctx := pongo2.Context{"organization": DefaultOrganization}
	for key, value := range extra {
		ctx[key] = value
	}
	return &Message{tpl: tpl, extra: ctx}, nil
}

// Render executes the template for one submission.
func (m *Message) Render(submission form.Submission) (string, error) {
	ctx := pongo2.Context{}
	for key, value := range m.extra {
		ctx[key] = value
	}
	ctx["values"] = plainValues(submission.Values)
	ctx["id"] = submission.ID
	ctx["form"] = submission.FormID
	ctx["submitted_at"] = submission.SubmittedAt

	out, err := m.tpl.Execute(ctx)
	if err != nil {
		return "", fmt.Errorf("notify: render message: %w", err)
	}
	return strings.TrimSpace(out), nil
}
