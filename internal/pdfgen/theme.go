package pdfgen

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed themes/default.yaml
var defaultThemeYAML []byte

// Color is an RGB triple.
type Color struct {
	R int `yaml:"r" json:"r"`
	G int `yaml:"g" json:"g"`
	B int `yaml:"b" json:"b"`
}

// Theme controls document styling. Font sizes are points, margins and
// line heights are millimeters.
type Theme struct {
	FontFamily   string  `yaml:"font_family"`
	MonoFamily   string  `yaml:"mono_family"`
	TitleSize    float64 `yaml:"title_size"`
	SubtitleSize float64 `yaml:"subtitle_size"`
	HeadingSize  float64 `yaml:"heading_size"`
	BodySize     float64 `yaml:"body_size"`
	EquationSize float64 `yaml:"equation_size"`
	FooterSize   float64 `yaml:"footer_size"`
	Margin       float64 `yaml:"margin"`
	LineHeight   float64 `yaml:"line_height"`

	HeadingColor   Color `yaml:"heading_color"`
	AccentColor    Color `yaml:"accent_color"`
	TextColor      Color `yaml:"text_color"`
	NoteColor      Color `yaml:"note_color"`
	HighlightColor Color `yaml:"highlight_color"`
	CommentColor   Color `yaml:"comment_color"`
}

// DefaultTheme returns the embedded default theme.
func DefaultTheme() Theme {
	var t Theme
	// The embedded theme is fixed at build time; a parse failure here is a
	// packaging bug.
	if err := yaml.Unmarshal(defaultThemeYAML, &t); err != nil {
		panic(fmt.Sprintf("pdfgen: embedded default theme is invalid: %v", err))
	}
	return t
}

// LoadTheme reads a YAML theme file. Fields absent from the file keep
// their default values.
func LoadTheme(path string) (Theme, error) {
	t := DefaultTheme()
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("read theme %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Theme{}, fmt.Errorf("parse theme %s: %w", path, err)
	}
	return t, nil
}
