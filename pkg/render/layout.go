// layout.go — Character wrapping and shrink-to-fit text layout.
package render

import (
	"math"

	"golang.org/x/image/font"
)

// fontSizeStep is the decrement used by the shrink-to-fit search.
const fontSizeStep = 4

// TextLayout is the result of fitting text into a box: the chosen face and
// size, the wrapped lines, and the vertical metrics of the block.
type TextLayout struct {
	Face       font.Face
	Size       int
	Lines      []string
	LineHeight int
	LineGap    int
}

// BlockHeight returns the total height of the laid-out text block.
func (l *TextLayout) BlockHeight() int {
	return blockHeight(len(l.Lines), l.LineHeight, l.LineGap)
}

func blockHeight(lineCount, lineHeight, lineGap int) int {
	if lineCount == 0 {
		return 0
	}
	return lineCount*lineHeight + (lineCount-1)*lineGap
}

// WrapText breaks text into lines that fit maxWidth pixels, scanning
// character by character. An explicit newline always breaks; a line that is
// still empty keeps the overflowing character so the scan makes progress.
// Non-empty input always yields at least one line.
func WrapText(face font.Face, text string, maxWidth int) []string {
	if text == "" {
		return []string{""}
	}

	var lines []string
	current := ""
	for _, r := range text {
		if r == '\n' {
			lines = append(lines, current)
			current = ""
			continue
		}
		tentative := current + string(r)
		if MeasureString(face, tentative) <= maxWidth || current == "" {
			current = tentative
		} else {
			lines = append(lines, current)
			current = string(r)
		}
	}
	if current != "" || len(lines) == 0 {
		lines = append(lines, current)
	}
	return lines
}

// FitText wraps and measures text at decreasing font sizes until the block
// fits the given box, starting at baseSize and stopping at
// max(20, baseSize/4). When even the floor size overflows, the floor layout
// is returned anyway: overflow is tolerated, not an error.
func FitText(fonts *FontManager, text string, maxWidth, maxHeight, baseSize int, lineSpacing float64) (*TextLayout, error) {
	minSize := max(20, baseSize/4)

	for size := baseSize; size >= minSize; size -= fontSizeStep {
		layout, widest, err := layoutAtSize(fonts, text, size, maxWidth, lineSpacing)
		if err != nil {
			return nil, err
		}
		if layout.BlockHeight() <= maxHeight && widest <= maxWidth {
			return layout, nil
		}
	}

	layout, _, err := layoutAtSize(fonts, text, minSize, maxWidth, lineSpacing)
	return layout, err
}

// layoutAtSize wraps and measures text at one font size, returning the
// layout and the widest line.
func layoutAtSize(fonts *FontManager, text string, size, maxWidth int, lineSpacing float64) (*TextLayout, int, error) {
	face, err := fonts.Face(size)
	if err != nil {
		return nil, 0, err
	}

	lines := WrapText(face, text, maxWidth)
	lineHeight := LineHeight(face)
	lineGap := int(math.Floor(float64(lineHeight) * math.Max(0, lineSpacing-1)))

	widest := 0
	for _, line := range lines {
		widest = max(widest, MeasureString(face, line))
	}

	return &TextLayout{
		Face:       face,
		Size:       size,
		Lines:      lines,
		LineHeight: lineHeight,
		LineGap:    lineGap,
	}, widest, nil
}
