// compose.go — Full-resolution sticker composition.
// Assembles one sticker at the supersampled canvas size: background fill or
// cover-fitted image, a centered shrink-to-fit text block with optional
// shadow and stroke, and an art region holding a user image or a drawn
// illustration. Each call owns its canvas; nothing is shared across
// stickers except the font manager.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"

	_ "image/jpeg" // art and background decoding
	_ "image/png"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/xob0t/GoSticker/pkg/config"
	"github.com/xob0t/GoSticker/pkg/imaging"
)

// minTextHeightRatio is the floor share of the available height the text
// block keeps; the art reservation is capped so it can never push text
// below this.
const minTextHeightRatio = 0.35

// Composer renders stickers and the set icon at the supersampled
// resolution. It is cheap to copy; parallel workers copy it with a cloned
// FontManager since faces are not safe for concurrent use.
type Composer struct {
	Fonts   *FontManager
	BaseDir string // root for relative asset references

	FontSize      int // base font size for the shrink-to-fit search
	Width, Height int // supersampled canvas dimensions
}

// RenderSticker composes one sticker onto a fresh canvas.
func (c *Composer) RenderSticker(spec *config.StickerSpec) (*image.RGBA, error) {
	canvas, err := c.composeBackground(spec)
	if err != nil {
		return nil, err
	}

	availW := c.Width - spec.Padding*2
	availH := c.Height - spec.Padding*2
	textBoxH := textRegionHeight(availH, spec.ImageAreaRatio, spec.HasArt())

	layout, err := FitText(c.Fonts, spec.Text, availW, textBoxH, c.FontSize, spec.LineSpacing)
	if err != nil {
		return nil, err
	}

	textTop := spec.Padding + max(0, (textBoxH-layout.BlockHeight())/2)
	if err := c.drawTextBlock(canvas, layout, spec, spec.Padding, textTop, availW); err != nil {
		return nil, err
	}

	art, err := c.resolveArt(spec)
	if err != nil {
		return nil, err
	}
	if art != nil {
		textBottom := textTop + layout.BlockHeight()
		c.placeArt(canvas, art, spec, availW, textBottom)
	}

	return canvas, nil
}

// textRegionHeight reserves the configured share of the available height
// for art while keeping at least the floor share for text.
func textRegionHeight(availH int, imageAreaRatio float64, hasArt bool) int {
	reserved := 0
	if hasArt {
		reserved = int(float64(availH) * imageAreaRatio)
	}
	return max(availH-reserved, int(float64(availH)*minTextHeightRatio))
}

// composeBackground fills the canvas with the background color and blends
// a cover-fitted background image over it when one is configured.
func (c *Composer) composeBackground(spec *config.StickerSpec) (*image.RGBA, error) {
	bg, err := ParseHexColor(spec.BackgroundColor)
	if err != nil {
		return nil, err
	}

	canvas := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{bg}, image.Point{}, draw.Src)

	if spec.BackgroundImage != "" {
		img, err := c.loadImage(spec.BackgroundImage)
		if err != nil {
			return nil, err
		}
		fitted := imaging.Fit(img, c.Width, c.Height)
		draw.Draw(canvas, canvas.Bounds(), fitted, image.Point{}, draw.Over)
	}

	return canvas, nil
}

// drawTextBlock draws the wrapped lines. The block is left-aligned to the
// padding edge while each line is centered within the available width.
// Shadow (when configured) goes first, then an offset-stamped stroke, then
// the line itself.
func (c *Composer) drawTextBlock(canvas *image.RGBA, layout *TextLayout, spec *config.StickerSpec, left, top, width int) error {
	textColor, err := ParseHexColor(spec.TextColor)
	if err != nil {
		return err
	}

	var shadowColor color.NRGBA
	if spec.TextShadowColor != "" {
		if shadowColor, err = ParseHexColor(spec.TextShadowColor); err != nil {
			return err
		}
	}

	// Pillow-style stroke: stamp the line at every offset within the
	// stroke radius. Defaults to the text color when no stroke color is set.
	strokeColor := textColor
	if spec.TextStrokeColor != "" {
		if strokeColor, err = ParseHexColor(spec.TextStrokeColor); err != nil {
			return err
		}
	}

	ascent := layout.Face.Metrics().Ascent.Ceil()
	y := top
	for _, line := range layout.Lines {
		lineWidth := MeasureString(layout.Face, line)
		x := left + max(0, (width-lineWidth)/2)
		baseline := y + ascent

		if spec.TextShadowColor != "" {
			drawString(canvas, layout.Face, line, x+spec.TextShadowOffset[0], baseline+spec.TextShadowOffset[1], shadowColor)
		}
		if spec.TextStrokeWidth > 0 {
			drawStringStroke(canvas, layout.Face, line, x, baseline, spec.TextStrokeWidth, strokeColor)
		}
		drawString(canvas, layout.Face, line, x, baseline, textColor)

		y += layout.LineHeight + layout.LineGap
	}
	return nil
}

// drawString renders one line with its baseline at (x, y).
func drawString(dst draw.Image, face font.Face, s string, x, y int, col color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// drawStringStroke stamps the line at every integer offset inside the
// stroke radius, producing an outline once the fill is drawn on top.
func drawStringStroke(dst draw.Image, face font.Face, s string, x, y, width int, col color.Color) {
	for dy := -width; dy <= width; dy++ {
		for dx := -width; dx <= width; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if dx*dx+dy*dy > width*width {
				continue
			}
			drawString(dst, face, s, x+dx, y+dy, col)
		}
	}
}

// resolveArt loads the sticker's art: an explicit image wins over the
// illustration; nil means the sticker is text-only.
func (c *Composer) resolveArt(spec *config.StickerSpec) (image.Image, error) {
	if spec.ImagePath != "" {
		return c.loadImage(spec.ImagePath)
	}
	if spec.Illustration.IsEnabled() {
		return DrawIllustration(spec.Illustration, IllustrationSize(c.Width, c.Height))
	}
	return nil, nil
}

// placeArt scales the art down (never up) to the text column width and the
// height remaining below the text, then bottom-aligns it above the bottom
// margin, horizontally centered. No room left means no art, silently.
func (c *Composer) placeArt(canvas *image.RGBA, art image.Image, spec *config.StickerSpec, availW, textBottom int) {
	maxH := c.Height - textBottom - spec.Padding - spec.ImageBottomMargin
	if maxH <= 0 {
		return
	}

	thumb := imaging.Thumbnail(art, availW, maxH)
	tw, th := thumb.Bounds().Dx(), thumb.Bounds().Dy()

	x := spec.Padding + max(0, (availW-tw)/2)
	y := c.Height - spec.Padding - spec.ImageBottomMargin - th
	draw.Draw(canvas, image.Rect(x, y, x+tw, y+th), thumb, image.Point{}, draw.Over)
}

// loadImage opens and decodes an asset image relative to the base dir.
func (c *Composer) loadImage(ref string) (image.Image, error) {
	path, err := config.ResolvePath(c.BaseDir, ref)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// RenderSetIcon composes the standalone set icon: a solid background with
// the title text fitted into the central 80% of a square canvas sized from
// the largest store dimension. The caller crops it to the final square.
func (c *Composer) RenderSetIcon(cfg *config.GenerationConfig) (*image.RGBA, error) {
	bg, err := ParseHexColor(cfg.SetIconBackground)
	if err != nil {
		return nil, err
	}
	fg, err := ParseHexColor(cfg.SetIconTextColor)
	if err != nil {
		return nil, err
	}

	side := max(cfg.StoreSize[0], cfg.StoreSize[1]) * cfg.ScaleMultiplier
	canvas := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{bg}, image.Point{}, draw.Src)

	fontSize := cfg.SetIconFontSize
	if fontSize <= 0 {
		fontSize = max(48, int(0.42*float64(side)))
	}

	region := side - int(0.2*float64(side))
	layout, err := FitText(c.Fonts, cfg.SetIconText, region, region, fontSize, 1.1)
	if err != nil {
		return nil, err
	}

	ascent := layout.Face.Metrics().Ascent.Ceil()
	y := (side - layout.BlockHeight()) / 2
	for _, line := range layout.Lines {
		x := (side - MeasureString(layout.Face, line)) / 2
		drawString(canvas, layout.Face, line, x, y+ascent, fg)
		y += layout.LineHeight + layout.LineGap
	}

	return canvas, nil
}
