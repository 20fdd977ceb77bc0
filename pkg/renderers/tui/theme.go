package tui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	theme "github.com/goliatone/go-theme"
)

const (
	// ThemeName identifies the built-in manifest.
	ThemeName = "regform"

	VariantLight = "light"
	VariantDark  = "dark"
)

// Palette tokens understood by the session.
const (
	TokenPrompt = "prompt"
	TokenError  = "error"
	TokenInfo   = "info"
)

// DefaultManifest describes the light palette with a dark variant. Token
// values are fatih/color names, optionally joined with "+" ("hiRed+bold").
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    ThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			TokenPrompt: "blue+bold",
			TokenError:  "red",
			TokenInfo:   "black",
		},
		Variants: map[string]theme.Variant{
			VariantDark: {
				Tokens: map[string]string{
					TokenPrompt: "hiCyan+bold",
					TokenError:  "hiRed",
					TokenInfo:   "hiWhite",
				},
			},
		},
	}
}

// Palette colours session output.
type Palette struct {
	Variant string
	Prompt  *color.Color
	Error   *color.Color
	Info    *color.Color
}

// NewPalette resolves the manifest tokens for variant. Variant tokens override
// the base tokens; unknown variants fall back to the base palette.
func NewPalette(manifest *theme.Manifest, variant string) (Palette, error) {
	if manifest == nil {
		manifest = DefaultManifest()
	}
	tokens := make(map[string]string, len(manifest.Tokens))
	for key, value := range manifest.Tokens {
		tokens[key] = value
	}
	if v, ok := manifest.Variants[variant]; ok {
		for key, value := range v.Tokens {
			tokens[key] = value
		}
	}

	palette := Palette{Variant: variant}
	var err error
	if palette.Prompt, err = parseColor(tokens[TokenPrompt]); err != nil {
		return Palette{}, err
	}
	if palette.Error, err = parseColor(tokens[TokenError]); err != nil {
		return Palette{}, err
	}
	if palette.Info, err = parseColor(tokens[TokenInfo]); err != nil {
		return Palette{}, err
	}
	return palette, nil
}

// Plain disables colour output on every entry.
func (p Palette) Plain() Palette {
	for _, c := range []*color.Color{p.Prompt, p.Error, p.Info} {
		c.DisableColor()
	}
	return p
}

var colorAttributes = map[string]color.Attribute{
	"black":     color.FgBlack,
	"red":       color.FgRed,
	"green":     color.FgGreen,
	"yellow":    color.FgYellow,
	"blue":      color.FgBlue,
	"magenta":   color.FgMagenta,
	"cyan":      color.FgCyan,
	"white":     color.FgWhite,
	"hiblack":   color.FgHiBlack,
	"hired":     color.FgHiRed,
	"higreen":   color.FgHiGreen,
	"hiyellow":  color.FgHiYellow,
	"hiblue":    color.FgHiBlue,
	"himagenta": color.FgHiMagenta,
	"hicyan":    color.FgHiCyan,
	"hiwhite":   color.FgHiWhite,
	"bold":      color.Bold,
	"faint":     color.Faint,
	"italic":    color.Italic,
	"underline": color.Underline,
}

func parseColor(token string) (*color.Color, error) {
	var attrs []color.Attribute
	for _, part := range strings.Split(token, "+") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		attr, ok := colorAttributes[name]
		if !ok {
			return nil, fmt.Errorf("tui: unknown colour %q", part)
		}
		attrs = append(attrs, attr)
	}
	return color.New(attrs...), nil
}

func otherVariant(variant string) string {
	if variant == VariantDark {
		return VariantLight
	}
	return VariantDark
}
