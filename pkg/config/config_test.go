package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadJSONDefaults(t *testing.T) {
	path := writeConfig(t, "stickers.json", `{"stickers": [{"text": "Hi"}]}`)

	cfg, baseDir, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Dir(path), baseDir)

	assert.Equal(t, 180, cfg.FontSize)
	assert.Equal(t, 4, cfg.ScaleMultiplier)
	assert.Equal(t, []int{370, 320}, cfg.MainSize)
	assert.Equal(t, []int{96, 74}, cfg.TabSize)
	assert.Equal(t, []int{240, 240}, cfg.StoreSize)
	assert.Equal(t, "build/stickers", cfg.OutputDir)

	s := cfg.Stickers[0]
	assert.Equal(t, "Hi", s.Text)
	assert.Equal(t, "#FFFFFF", s.BackgroundColor)
	assert.Equal(t, "#000000", s.TextColor)
	assert.Equal(t, 90, s.Padding)
	assert.Equal(t, 1.05, s.LineSpacing)
	assert.Equal(t, 0.45, s.ImageAreaRatio)
	assert.Equal(t, 40, s.ImageBottomMargin)
	assert.Equal(t, []int{8, 8}, s.TextShadowOffset)
	assert.Nil(t, s.Illustration)
	assert.False(t, s.HasArt())
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "stickers.yaml", `
font_size: 120
main_size: [200, 200]
stickers:
  - text: "Good Morning"
    background_color: "#FFEECC"
    illustration:
      style: cat
      expression: wink
  - text: "Bye"
    line_spacing: 1.5
`)

	cfg, _, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Stickers, 2)

	assert.Equal(t, 120, cfg.FontSize)
	assert.Equal(t, []int{200, 200}, cfg.MainSize)

	ill := cfg.Stickers[0].Illustration
	require.NotNil(t, ill)
	assert.True(t, ill.IsEnabled(), "present illustration block defaults to enabled")
	assert.Equal(t, "cat", ill.Style)
	assert.Equal(t, "wink", ill.Expression)
	assert.Equal(t, "#FFD166", ill.FaceColor)
	assert.Equal(t, "#2F2F2F", ill.OutlineColor)
	assert.True(t, cfg.Stickers[0].HasArt())

	assert.Equal(t, 1.5, cfg.Stickers[1].LineSpacing)
}

func TestLoadClampsRanges(t *testing.T) {
	path := writeConfig(t, "stickers.json", `{
		"font_size": 10,
		"scale_multiplier": 1,
		"main_size": [0, 320],
		"tab_size": [96],
		"stickers": [
			{"text": "a", "line_spacing": 9.0, "image_area_ratio": 2.0, "text_stroke_width": -3},
			{"text": "b", "line_spacing": 0.01, "image_area_ratio": -1, "text_shadow_offset": [1, 2, 3]}
		]
	}`)

	cfg, _, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 24, cfg.FontSize)
	assert.Equal(t, 2, cfg.ScaleMultiplier)
	assert.Equal(t, []int{370, 320}, cfg.MainSize, "malformed size falls back to default")
	assert.Equal(t, []int{96, 74}, cfg.TabSize)

	assert.Equal(t, 2.0, cfg.Stickers[0].LineSpacing)
	assert.Equal(t, 0.95, cfg.Stickers[0].ImageAreaRatio)
	assert.Zero(t, cfg.Stickers[0].TextStrokeWidth)

	assert.Equal(t, 0.1, cfg.Stickers[1].LineSpacing)
	assert.Zero(t, cfg.Stickers[1].ImageAreaRatio)
	assert.Equal(t, []int{8, 8}, cfg.Stickers[1].TextShadowOffset)
}

func TestLoadExplicitIllustrationDisabled(t *testing.T) {
	path := writeConfig(t, "stickers.json", `{
		"stickers": [{"text": "a", "illustration": {"enabled": false, "style": "cat"}}]
	}`)

	cfg, _, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.Stickers[0].Illustration.IsEnabled())
	assert.False(t, cfg.Stickers[0].HasArt())
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	path := writeConfig(t, "stickers.toml", `stickers = []`)
	_, _, err := Load(path)
	assert.ErrorContains(t, err, "unsupported config format")
}

func TestLoadRejectsEmptyStickerList(t *testing.T) {
	path := writeConfig(t, "stickers.json", `{"stickers": []}`)
	_, _, err := Load(path)
	assert.ErrorContains(t, err, "stickers")
}

func TestLoadMissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestBaseSize(t *testing.T) {
	cfg := GenerationConfig{MainSize: []int{370, 320}, ScaleMultiplier: 4}
	w, h := cfg.BaseSize()
	assert.Equal(t, 1480, w)
	assert.Equal(t, 1280, h)
}

func TestResolvePath(t *testing.T) {
	dir := t.TempDir()
	asset := filepath.Join(dir, "bg.png")
	require.NoError(t, os.WriteFile(asset, []byte("x"), 0644))

	resolved, err := ResolvePath(dir, "bg.png")
	require.NoError(t, err)
	assert.Equal(t, asset, resolved)

	resolved, err = ResolvePath("/elsewhere", asset)
	require.NoError(t, err)
	assert.Equal(t, asset, resolved, "absolute refs ignore baseDir")

	_, err = ResolvePath(dir, "missing.png")
	assert.ErrorIs(t, err, ErrAssetNotFound)

	_, err = ResolvePath(dir, "")
	assert.ErrorIs(t, err, ErrUnresolvedPath)
}
