// illustration.go — Procedural character art.
// Draws a parametric creature face ("blob" or "cat") onto a transparent
// square canvas. Geometry is expressed as fractions of the canvas size so
// the same shapes hold at any supersampling factor.
package render

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"

	"github.com/xob0t/GoSticker/pkg/config"
)

// Expression selects the eye/eyebrow/mouth variant of an illustration.
type Expression string

const (
	ExpressionSmile  Expression = "smile"
	ExpressionLaugh  Expression = "laugh"
	ExpressionWink   Expression = "wink"
	ExpressionAngry  Expression = "angry"
	ExpressionHappy  Expression = "happy"
	ExpressionSleepy Expression = "sleepy"
	ExpressionSad    Expression = "sad"
)

// IllustrationSize returns the square canvas edge for a given composition
// canvas: 55% of the shorter dimension, never below 200px.
func IllustrationSize(canvasW, canvasH int) int {
	return max(200, int(0.55*float64(min(canvasW, canvasH))))
}

// DrawIllustration renders the configured creature onto a transparent
// size×size canvas. Colors are parsed here, so a malformed color surfaces
// as ErrInvalidColor at draw time.
func DrawIllustration(spec *config.IllustrationSpec, size int) (image.Image, error) {
	faceColor, err := ParseHexColor(spec.FaceColor)
	if err != nil {
		return nil, err
	}
	outlineColor, err := ParseHexColor(spec.OutlineColor)
	if err != nil {
		return nil, err
	}
	// Inner details (inner ears, mouth fill) use the accent when present,
	// the outline color otherwise.
	accentColor := outlineColor
	if spec.AccentColor != "" {
		accentColor, err = ParseHexColor(spec.AccentColor)
		if err != nil {
			return nil, err
		}
	}

	dc := gg.NewContext(size, size)
	s := float64(size)
	outlineWidth := math.Max(4, s/35)

	switch spec.Style {
	case "cat":
		drawCatEars(dc, s, faceColor, outlineColor, accentColor, spec.AccentColor != "", outlineWidth)
		drawBody(dc, 0.10*s, 0.20*s, 0.90*s, 0.95*s, faceColor, outlineColor, outlineWidth)
	default: // blob
		drawBody(dc, 0.08*s, 0.15*s, 0.92*s, 0.95*s, faceColor, outlineColor, outlineWidth)
	}

	drawFace(dc, s, Expression(spec.Expression), outlineColor, accentColor)

	return dc.Image(), nil
}

// drawBody fills and outlines the body ellipse given its bounding box.
func drawBody(dc *gg.Context, left, top, right, bottom float64, fill, outline color.NRGBA, outlineWidth float64) {
	cx := (left + right) / 2
	cy := (top + bottom) / 2
	dc.DrawEllipse(cx, cy, (right-left)/2, (bottom-top)/2)
	dc.SetColor(fill)
	dc.FillPreserve()
	dc.SetColor(outline)
	dc.SetLineWidth(outlineWidth)
	dc.Stroke()
}

// drawCatEars draws two triangular ears, mirrored about the horizontal
// center, before the body so the body covers the ear bases. When an accent
// color is configured, smaller inner-ear triangles are added.
func drawCatEars(dc *gg.Context, s float64, fill, outline, accent color.NRGBA, hasAccent bool, outlineWidth float64) {
	cx := 0.5 * s
	for _, side := range []float64{-1, 1} {
		base := [3][2]float64{
			{cx + side*0.32*s, 0.30 * s},
			{cx + side*0.24*s, 0.04 * s},
			{cx + side*0.06*s, 0.22 * s},
		}

		drawTriangle(dc, base)
		dc.SetColor(fill)
		dc.FillPreserve()
		dc.SetColor(outline)
		dc.SetLineWidth(outlineWidth)
		dc.Stroke()

		if hasAccent {
			drawTriangle(dc, shrinkTriangle(base, 0.45))
			dc.SetColor(accent)
			dc.Fill()
		}
	}
}

func drawTriangle(dc *gg.Context, pts [3][2]float64) {
	dc.MoveTo(pts[0][0], pts[0][1])
	dc.LineTo(pts[1][0], pts[1][1])
	dc.LineTo(pts[2][0], pts[2][1])
	dc.ClosePath()
}

// shrinkTriangle moves each vertex toward the centroid by the given factor.
func shrinkTriangle(pts [3][2]float64, factor float64) [3][2]float64 {
	cx := (pts[0][0] + pts[1][0] + pts[2][0]) / 3
	cy := (pts[0][1] + pts[1][1] + pts[2][1]) / 3
	var out [3][2]float64
	for i, p := range pts {
		out[i][0] = p[0] + (cx-p[0])*factor
		out[i][1] = p[1] + (cy-p[1])*factor
	}
	return out
}

// drawFace renders eyes, eyebrows and mouth for the given expression.
func drawFace(dc *gg.Context, s float64, expr Expression, outline, accent color.NRGBA) {
	eyeRadius := math.Max(8, s/9) / 2
	eyeY := 0.45 * s
	leftX := 0.5*s - s/5
	rightX := 0.5*s + s/5
	featureWidth := math.Max(3, s/45)

	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineWidth(featureWidth)

	switch expr {
	case ExpressionWink:
		drawOpenEye(dc, leftX, eyeY, eyeRadius, outline)
		drawClosedEye(dc, rightX, eyeY, eyeRadius, outline)
	case ExpressionAngry:
		drawOpenEye(dc, leftX, eyeY, eyeRadius, outline)
		drawOpenEye(dc, rightX, eyeY, eyeRadius, outline)
		drawEyebrow(dc, leftX, eyeY, eyeRadius, -1, outline)
		drawEyebrow(dc, rightX, eyeY, eyeRadius, 1, outline)
	case ExpressionHappy:
		drawOpenEye(dc, leftX, eyeY, eyeRadius, outline)
		drawOpenEye(dc, rightX, eyeY, eyeRadius, outline)
		drawEyeHighlight(dc, leftX, eyeY, eyeRadius)
		drawEyeHighlight(dc, rightX, eyeY, eyeRadius)
	case ExpressionSleepy:
		drawClosedEye(dc, leftX, eyeY, eyeRadius, outline)
		drawClosedEye(dc, rightX, eyeY, eyeRadius, outline)
	default:
		drawOpenEye(dc, leftX, eyeY, eyeRadius, outline)
		drawOpenEye(dc, rightX, eyeY, eyeRadius, outline)
	}

	drawMouth(dc, s, expr, outline, accent, featureWidth)
}

func drawOpenEye(dc *gg.Context, x, y, r float64, c color.NRGBA) {
	dc.DrawCircle(x, y, r)
	dc.SetColor(c)
	dc.Fill()
}

// drawClosedEye renders the eye as a short diagonal line.
func drawClosedEye(dc *gg.Context, x, y, r float64, c color.NRGBA) {
	dc.SetColor(c)
	dc.DrawLine(x-1.2*r, y-0.2*r, x+1.2*r, y+0.4*r)
	dc.Stroke()
}

// drawEyebrow renders a slanted line above the eye, tilting toward the
// face center. side is -1 for the left eye, 1 for the right.
func drawEyebrow(dc *gg.Context, x, y, r float64, side float64, c color.NRGBA) {
	dc.SetColor(c)
	dc.DrawLine(x-side*1.4*r, y-2.4*r, x+side*1.2*r, y-1.6*r)
	dc.Stroke()
}

func drawEyeHighlight(dc *gg.Context, x, y, r float64) {
	dc.DrawCircle(x-0.3*r, y-0.3*r, 0.35*r)
	dc.SetColor(color.White)
	dc.Fill()
}

// mouthShape describes one mouth rendering: an elliptical arc span in
// counterclockwise degrees (0° at three o'clock, 90° at the top), a filled
// chord, or a flat line.
type mouthShape struct {
	start, end float64
	filled     bool
	flat       bool
}

// mouthFor maps each expression to its mouth shape; unknown expressions
// fall back to the smile arc.
func mouthFor(expr Expression) mouthShape {
	switch expr {
	case ExpressionLaugh, ExpressionWink, ExpressionHappy:
		return mouthShape{start: 200, end: 340, filled: true}
	case ExpressionAngry:
		return mouthShape{flat: true}
	case ExpressionSad:
		return mouthShape{start: 20, end: 160}
	case ExpressionSmile:
		return mouthShape{start: 200, end: 340}
	default:
		return mouthShape{start: 200, end: 340}
	}
}

// drawMouth renders the mouth inside a box centered at 68% height with
// half-width 32% and half-height 18% of the canvas.
func drawMouth(dc *gg.Context, s float64, expr Expression, outline, accent color.NRGBA, lineWidth float64) {
	cx := 0.5 * s
	cy := 0.68 * s
	halfW := 0.32 * s
	halfH := 0.18 * s

	shape := mouthFor(expr)
	dc.SetLineWidth(lineWidth)

	switch {
	case shape.flat:
		dc.SetColor(outline)
		dc.DrawLine(cx-halfW, cy, cx+halfW, cy)
		dc.Stroke()
	case shape.filled:
		drawMouthArc(dc, cx, cy, halfW, halfH, shape)
		dc.ClosePath()
		dc.SetColor(accent)
		dc.FillPreserve()
		dc.SetColor(outline)
		dc.Stroke()
	default:
		drawMouthArc(dc, cx, cy, halfW, halfH, shape)
		dc.SetColor(outline)
		dc.Stroke()
	}
}

// drawMouthArc traces the arc. The shape table uses the conventional
// counterclockwise angle system while the canvas y axis grows downward, so
// the angles are negated here.
func drawMouthArc(dc *gg.Context, cx, cy, rx, ry float64, shape mouthShape) {
	dc.NewSubPath()
	dc.DrawEllipticalArc(cx, cy, rx, ry, gg.Radians(-shape.end), gg.Radians(-shape.start))
}
