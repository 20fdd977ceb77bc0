package render

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-regform/pkg/validation"
)

// FormScope is the catalogue key holding messages for form level codes.
const FormScope = "_form"

// DefaultScope holds fallback messages consulted after a field's own list.
const DefaultScope = "*"

// Message is one catalogue entry: the text shown for Code, optionally
// translated through Key.
type Message struct {
	Code string `json:"code" yaml:"code"`
	Text string `json:"text" yaml:"text"`
	Key  string `json:"key,omitempty" yaml:"key,omitempty"`
}

// Catalog maps scopes (field names, FormScope, DefaultScope) to ordered
// message lists. The order of a list is the priority order used when several
// codes are present at once.
type Catalog struct {
	scopes map[string][]Message
}

// NewCatalog builds a catalogue from scope -> messages.
func NewCatalog(scopes map[string][]Message) (*Catalog, error) {
	c := &Catalog{scopes: make(map[string][]Message, len(scopes))}
	for scope, messages := range scopes {
		if err := c.Add(scope, messages...); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Add appends messages to a scope. A code may only appear once per scope.
func (c *Catalog) Add(scope string, messages ...Message) error {
	scope = strings.TrimSpace(scope)
	if scope == "" {
		return fmt.Errorf("render: catalogue scope is required")
	}
	if c.scopes == nil {
		c.scopes = make(map[string][]Message)
	}
	existing := c.scopes[scope]
	for _, msg := range messages {
		code := strings.TrimSpace(msg.Code)
		if code == "" {
			return fmt.Errorf("render: scope %q has a message without code", scope)
		}
		for _, prev := range existing {
			if prev.Code == code {
				return fmt.Errorf("render: scope %q defines code %q twice", scope, code)
			}
		}
		msg.Code = code
		existing = append(existing, msg)
	}
	c.scopes[scope] = existing
	return nil
}

// Lookup returns the ordered entries for a scope.
func (c *Catalog) Lookup(scope string) []Message {
	if c == nil {
		return nil
	}
	return append([]Message(nil), c.scopes[scope]...)
}

// Projector turns code sets into messages using a catalogue and an optional
// translator.
type Projector struct {
	Catalog    *Catalog
	Locale     string
	Translator Translator
	OnMissing  MissingTranslationHandler
}

// Messages returns one message per recognised code, in the scope's priority
// order followed by the DefaultScope order for codes the scope does not know.
// Unrecognised codes produce nothing.
func (p Projector) Messages(scope string, codes validation.Codes) []string {
	if len(codes) == 0 || p.Catalog == nil {
		return nil
	}

	var out []string
	used := make(map[string]struct{}, len(codes))
	for _, list := range [][]Message{p.Catalog.scopes[scope], p.Catalog.scopes[DefaultScope]} {
		for _, msg := range list {
			if _, done := used[msg.Code]; done || !codes.Has(msg.Code) {
				continue
			}
			used[msg.Code] = struct{}{}
			out = append(out, p.text(msg))
		}
	}
	return normalizeMessages(out)
}

// FormMessages projects form level codes through FormScope.
func (p Projector) FormMessages(codes validation.Codes) []string {
	return p.Messages(FormScope, codes)
}

func (p Projector) text(msg Message) string {
	if strings.TrimSpace(msg.Key) == "" {
		return msg.Text
	}
	onMissing := p.OnMissing
	if onMissing == nil {
		onMissing = fallbackOnMissing
	}
	return translate(p.Locale, msg.Key, msg.Text, p.Translator, onMissing)
}
