// color.go — Hex color parsing shared by every drawing call.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ErrInvalidColor marks a malformed hex color string. Colors are parsed at
// draw time, so a bad value aborts the run on the sticker that uses it.
var ErrInvalidColor = errors.New("invalid color")

// ParseHexColor parses "#RGB", "#RRGGBB" or "#RRGGBBAA" into a
// non-premultiplied RGBA value. The three-digit form duplicates each digit;
// the six-digit form is fully opaque.
func ParseHexColor(s string) (color.NRGBA, error) {
	raw := strings.TrimSpace(s)
	if !strings.HasPrefix(raw, "#") {
		return color.NRGBA{}, fmt.Errorf("%w: %q must start with '#'", ErrInvalidColor, s)
	}
	raw = raw[1:]

	if len(raw) == 3 {
		var b strings.Builder
		for _, ch := range raw {
			b.WriteRune(ch)
			b.WriteRune(ch)
		}
		raw = b.String()
	}
	if len(raw) == 6 {
		raw += "FF"
	}
	if len(raw) != 8 {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	var channels [4]uint8
	for i := 0; i < 4; i++ {
		v, err := strconv.ParseUint(raw[i*2:i*2+2], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		channels[i] = uint8(v)
	}

	return color.NRGBA{R: channels[0], G: channels[1], B: channels[2], A: channels[3]}, nil
}
