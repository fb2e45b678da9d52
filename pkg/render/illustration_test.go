package render

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xob0t/GoSticker/pkg/config"
)

func illustrationSpec(style, expression string) *config.IllustrationSpec {
	return &config.IllustrationSpec{
		Style:        style,
		FaceColor:    "#FFD166",
		OutlineColor: "#2F2F2F",
		Expression:   expression,
	}
}

func TestIllustrationSize(t *testing.T) {
	assert.Equal(t, 704, IllustrationSize(1480, 1280)) // 0.55 × 1280
	assert.Equal(t, 200, IllustrationSize(100, 100))   // floor
	assert.Equal(t, 220, IllustrationSize(400, 600))   // shorter dimension wins
}

func TestDrawIllustrationBlob(t *testing.T) {
	img, err := DrawIllustration(illustrationSpec("blob", "smile"), 200)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 200, 200), img.Bounds())

	// Body interior is opaque, corners stay transparent.
	_, _, _, a := img.At(100, 110).RGBA()
	assert.EqualValues(t, 0xffff, a)
	_, _, _, a = img.At(2, 2).RGBA()
	assert.Zero(t, a)
}

func TestDrawIllustrationCatWinkWithoutAccent(t *testing.T) {
	// No accent color set: inner details fall back to the outline color
	// and nothing errors.
	img, err := DrawIllustration(illustrationSpec("cat", "wink"), 256)
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())

	// An ear tip is drawn above the body ellipse.
	side := 256.0
	_, _, _, a := img.At(int(0.26*side), int(0.10*side)).RGBA()
	assert.NotZero(t, a)
}

func TestDrawIllustrationAllExpressions(t *testing.T) {
	for _, expr := range []string{"smile", "laugh", "wink", "angry", "happy", "sleepy", "sad", "unknown"} {
		for _, style := range []string{"blob", "cat"} {
			_, err := DrawIllustration(illustrationSpec(style, expr), 200)
			assert.NoError(t, err, "style %s expression %s", style, expr)
		}
	}
}

func TestDrawIllustrationAccentColor(t *testing.T) {
	spec := illustrationSpec("cat", "laugh")
	spec.AccentColor = "#FF5577"
	_, err := DrawIllustration(spec, 300)
	require.NoError(t, err)
}

func TestDrawIllustrationInvalidColor(t *testing.T) {
	spec := illustrationSpec("blob", "smile")
	spec.FaceColor = "ffd166" // missing '#'
	_, err := DrawIllustration(spec, 200)
	assert.ErrorIs(t, err, ErrInvalidColor)

	spec = illustrationSpec("blob", "smile")
	spec.AccentColor = "#nope"
	_, err = DrawIllustration(spec, 200)
	assert.ErrorIs(t, err, ErrInvalidColor)
}

func TestMouthDispatch(t *testing.T) {
	assert.Equal(t, mouthShape{start: 200, end: 340}, mouthFor(ExpressionSmile))
	assert.Equal(t, mouthShape{start: 200, end: 340, filled: true}, mouthFor(ExpressionLaugh))
	assert.Equal(t, mouthShape{start: 200, end: 340, filled: true}, mouthFor(ExpressionWink))
	assert.Equal(t, mouthShape{start: 200, end: 340, filled: true}, mouthFor(ExpressionHappy))
	assert.Equal(t, mouthShape{flat: true}, mouthFor(ExpressionAngry))
	assert.Equal(t, mouthShape{start: 20, end: 160}, mouthFor(ExpressionSad))
	// Expressions without their own mouth share the smile arc.
	assert.Equal(t, mouthFor(ExpressionSmile), mouthFor(ExpressionSleepy))
	assert.Equal(t, mouthFor(ExpressionSmile), mouthFor(Expression("grumpy")))
}
