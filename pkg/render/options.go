package render

// RenderOptions describe per-session data renderers use to customise their
// output without touching the form definition.
type RenderOptions struct {
	// Values pre-populates fields before the session starts. Keys are field
	// names; unknown names are reported as errors by renderers.
	Values map[string]any
	// Messages projects error codes into user facing text. Renderers fall back
	// to an empty catalogue, which yields no messages.
	Messages *Catalog
	// Locale selects the translation used for catalogue keys.
	Locale string
	// Translator resolves catalogue keys. When nil the catalogue text is used.
	Translator Translator
	// OnMissing decides the text used when a key cannot be translated.
	OnMissing MissingTranslationHandler
}

// Projector returns the message projector configured by the options.
func (o RenderOptions) Projector() Projector {
	return Projector{
		Catalog:    o.Messages,
		Locale:     o.Locale,
		Translator: o.Translator,
		OnMissing:  o.OnMissing,
	}
}
