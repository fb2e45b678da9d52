// Package config defines the sticker set configuration and its JSON/YAML loader.
package config

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Default output dimensions. Malformed or missing size pairs in a config
// fall back to these instead of failing the load.
var (
	defaultMainSize  = []int{370, 320}
	defaultTabSize   = []int{96, 74}
	defaultStoreSize = []int{240, 240}
)

// IllustrationSpec selects and parameterizes the procedurally drawn
// character art used when a sticker has no static image.
type IllustrationSpec struct {
	Enabled      *bool  `json:"enabled,omitempty" yaml:"enabled,omitempty"` // nil = enabled (block present implies intent)
	Style        string `json:"style,omitempty" yaml:"style,omitempty"`    // "blob" or "cat"
	FaceColor    string `json:"face_color,omitempty" yaml:"face_color,omitempty"`
	OutlineColor string `json:"outline_color,omitempty" yaml:"outline_color,omitempty"`
	AccentColor  string `json:"accent_color,omitempty" yaml:"accent_color,omitempty"`
	Expression   string `json:"expression,omitempty" yaml:"expression,omitempty"`
}

// IsEnabled reports whether the illustration should be drawn.
func (s *IllustrationSpec) IsEnabled() bool {
	if s == nil {
		return false
	}
	return s.Enabled == nil || *s.Enabled
}

func defaultIllustration() IllustrationSpec {
	return IllustrationSpec{
		Style:        "blob",
		FaceColor:    "#FFD166",
		OutlineColor: "#2F2F2F",
		Expression:   "smile",
	}
}

// UnmarshalJSON decodes over the defaults so absent fields keep them.
func (s *IllustrationSpec) UnmarshalJSON(data []byte) error {
	type alias IllustrationSpec
	a := alias(defaultIllustration())
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*s = IllustrationSpec(a)
	return nil
}

// UnmarshalYAML decodes over the defaults so absent fields keep them.
func (s *IllustrationSpec) UnmarshalYAML(value *yaml.Node) error {
	type alias IllustrationSpec
	a := alias(defaultIllustration())
	if err := value.Decode(&a); err != nil {
		return err
	}
	*s = IllustrationSpec(a)
	return nil
}

// StickerSpec describes one sticker: its text, colors, optional art, and
// layout controls. Specs are read-only once loaded.
type StickerSpec struct {
	Text             string `json:"text" yaml:"text"`
	Slug             string `json:"slug,omitempty" yaml:"slug,omitempty"`
	BackgroundColor  string `json:"background_color,omitempty" yaml:"background_color,omitempty"`
	BackgroundImage  string `json:"background_image,omitempty" yaml:"background_image,omitempty"`
	TextColor        string `json:"text_color,omitempty" yaml:"text_color,omitempty"`
	TextShadowColor  string `json:"text_shadow_color,omitempty" yaml:"text_shadow_color,omitempty"`
	TextShadowOffset []int  `json:"text_shadow_offset,omitempty" yaml:"text_shadow_offset,omitempty"`
	TextStrokeColor  string `json:"text_stroke_color,omitempty" yaml:"text_stroke_color,omitempty"`
	TextStrokeWidth  int    `json:"text_stroke_width,omitempty" yaml:"text_stroke_width,omitempty"`

	// Padding is in pixels of the supersampled canvas.
	Padding     int     `json:"padding,omitempty" yaml:"padding,omitempty"`
	LineSpacing float64 `json:"line_spacing,omitempty" yaml:"line_spacing,omitempty"`

	ImagePath         string            `json:"image_path,omitempty" yaml:"image_path,omitempty"`
	ImageAreaRatio    float64           `json:"image_area_ratio,omitempty" yaml:"image_area_ratio,omitempty"`
	ImageBottomMargin int               `json:"image_bottom_margin,omitempty" yaml:"image_bottom_margin,omitempty"`
	Illustration      *IllustrationSpec `json:"illustration,omitempty" yaml:"illustration,omitempty"`
}

func defaultSticker() StickerSpec {
	return StickerSpec{
		BackgroundColor:   "#FFFFFF",
		TextColor:         "#000000",
		TextShadowOffset:  []int{8, 8},
		Padding:           90,
		LineSpacing:       1.05,
		ImageAreaRatio:    0.45,
		ImageBottomMargin: 40,
	}
}

// UnmarshalJSON decodes over the defaults so absent fields keep them.
func (s *StickerSpec) UnmarshalJSON(data []byte) error {
	type alias StickerSpec
	a := alias(defaultSticker())
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*s = StickerSpec(a)
	return nil
}

// UnmarshalYAML decodes over the defaults so absent fields keep them.
func (s *StickerSpec) UnmarshalYAML(value *yaml.Node) error {
	type alias StickerSpec
	a := alias(defaultSticker())
	if err := value.Decode(&a); err != nil {
		return err
	}
	*s = StickerSpec(a)
	return nil
}

// HasArt reports whether the sticker reserves space for an image or an
// enabled illustration. An explicit image always wins over the illustration.
func (s *StickerSpec) HasArt() bool {
	return s.ImagePath != "" || s.Illustration.IsEnabled()
}

// GenerationConfig is the process-wide configuration: the ordered sticker
// list plus output, font, and sizing parameters.
type GenerationConfig struct {
	Stickers []StickerSpec `json:"stickers" yaml:"stickers"`

	OutputDir string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`
	FontPath  string `json:"font_path,omitempty" yaml:"font_path,omitempty"`
	FontSize  int    `json:"font_size,omitempty" yaml:"font_size,omitempty"`

	MainSize  []int `json:"main_size,omitempty" yaml:"main_size,omitempty"`
	TabSize   []int `json:"tab_size,omitempty" yaml:"tab_size,omitempty"`
	StoreSize []int `json:"store_size,omitempty" yaml:"store_size,omitempty"`

	// ScaleMultiplier is the supersampling factor: stickers are composed at
	// main_size × scale and downscaled on export.
	ScaleMultiplier int `json:"scale_multiplier,omitempty" yaml:"scale_multiplier,omitempty"`

	SetIconText       string `json:"set_icon_text,omitempty" yaml:"set_icon_text,omitempty"`
	SetIconBackground string `json:"set_icon_background,omitempty" yaml:"set_icon_background,omitempty"`
	SetIconTextColor  string `json:"set_icon_text_color,omitempty" yaml:"set_icon_text_color,omitempty"`
	SetIconFontSize   int    `json:"set_icon_font_size,omitempty" yaml:"set_icon_font_size,omitempty"`
}

func defaultConfig() GenerationConfig {
	return GenerationConfig{
		OutputDir:         "build/stickers",
		FontSize:          180,
		MainSize:          defaultMainSize,
		TabSize:           defaultTabSize,
		StoreSize:         defaultStoreSize,
		ScaleMultiplier:   4,
		SetIconBackground: "#FFFFFF",
		SetIconTextColor:  "#000000",
	}
}

// UnmarshalJSON decodes over the defaults so absent fields keep them.
func (c *GenerationConfig) UnmarshalJSON(data []byte) error {
	type alias GenerationConfig
	a := alias(defaultConfig())
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*c = GenerationConfig(a)
	return nil
}

// UnmarshalYAML decodes over the defaults so absent fields keep them.
func (c *GenerationConfig) UnmarshalYAML(value *yaml.Node) error {
	type alias GenerationConfig
	a := alias(defaultConfig())
	if err := value.Decode(&a); err != nil {
		return err
	}
	*c = GenerationConfig(a)
	return nil
}

// BaseSize returns the supersampled composition canvas size.
func (c *GenerationConfig) BaseSize() (w, h int) {
	return c.MainSize[0] * c.ScaleMultiplier, c.MainSize[1] * c.ScaleMultiplier
}

// Normalize clamps every field into its documented range. Malformed values
// fall back to defaults rather than failing the run.
func (c *GenerationConfig) Normalize() {
	c.FontSize = max(c.FontSize, 24)
	c.ScaleMultiplier = max(c.ScaleMultiplier, 2)
	c.MainSize = normalizeSize(c.MainSize, defaultMainSize)
	c.TabSize = normalizeSize(c.TabSize, defaultTabSize)
	c.StoreSize = normalizeSize(c.StoreSize, defaultStoreSize)

	for i := range c.Stickers {
		normalizeSticker(&c.Stickers[i])
	}
}

func normalizeSticker(s *StickerSpec) {
	s.LineSpacing = clampFloat(s.LineSpacing, 0.1, 2.0)
	s.ImageAreaRatio = clampFloat(s.ImageAreaRatio, 0.0, 0.95)
	s.TextStrokeWidth = max(s.TextStrokeWidth, 0)
	s.Padding = max(s.Padding, 0)
	s.ImageBottomMargin = max(s.ImageBottomMargin, 0)
	if len(s.TextShadowOffset) != 2 {
		s.TextShadowOffset = []int{8, 8}
	}
	if s.Illustration != nil {
		if s.Illustration.Style == "" {
			s.Illustration.Style = "blob"
		}
		if s.Illustration.Expression == "" {
			s.Illustration.Expression = "smile"
		}
		if s.Illustration.FaceColor == "" {
			s.Illustration.FaceColor = "#FFD166"
		}
		if s.Illustration.OutlineColor == "" {
			s.Illustration.OutlineColor = "#2F2F2F"
		}
	}
}

func normalizeSize(size, fallback []int) []int {
	if len(size) != 2 || size[0] <= 0 || size[1] <= 0 {
		return fallback
	}
	return size
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
