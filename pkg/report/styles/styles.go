// Package styles defines the visual styling for cwkit's terminal output.
//
// All styles use semantic names and adaptive colors that automatically
// adjust to light and dark terminal themes. The definitions live in the
// embedded styles.yaml so theming stays declarative.
package styles

import (
	_ "embed"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

//go:embed styles.yaml
var stylesYAML []byte

// ColorDef represents an adaptive color definition in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef represents a style definition in YAML
type StyleDef struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Underline  bool   `yaml:"underline,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
	Width      int    `yaml:"width,omitempty"`
}

// Config represents the complete styles configuration
type Config struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// Registry maps semantic names to lipgloss styles
var Registry map[string]lipgloss.Style

func init() {
	var cfg Config
	if err := yaml.Unmarshal(stylesYAML, &cfg); err != nil {
		// Embedded and validated by tests; an unparsable file means a
		// build-time mistake, so fall back to unstyled output.
		Registry = map[string]lipgloss.Style{}
		return
	}

	colors := make(map[string]lipgloss.AdaptiveColor, len(cfg.Colors))
	for name, def := range cfg.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	Registry = make(map[string]lipgloss.Style, len(cfg.Styles))
	for name, def := range cfg.Styles {
		style := lipgloss.NewStyle()
		if def.Bold {
			style = style.Bold(true)
		}
		if def.Italic {
			style = style.Italic(true)
		}
		if def.Underline {
			style = style.Underline(true)
		}
		if def.Width > 0 {
			style = style.Width(def.Width)
		}
		if c, ok := colors[def.Foreground]; ok {
			style = style.Foreground(c)
		}
		Registry[name] = style
	}
}

// Get returns the style for the given semantic name, or a zero style
// if the name is unknown.
func Get(name string) lipgloss.Style {
	if s, ok := Registry[name]; ok {
		return s
	}
	return lipgloss.NewStyle()
}
