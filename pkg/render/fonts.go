// fonts.go — Font resolution and face caching.
// Resolution order: explicit config path, then a list of well-known OS font
// locations, then the embedded Go Regular font. Only the explicit path is
// fatal when broken; the candidate scan just moves on.
package render

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// ErrFontLoad marks a font file that exists but cannot be parsed.
var ErrFontLoad = errors.New("font load failed")

// fontCandidates are scanned in order when no font path is configured.
// CJK-capable fonts come first since sticker text is frequently non-Latin.
var fontCandidates = []string{
	"C:/Windows/Fonts/YuGothR.ttc",
	"C:/Windows/Fonts/MSGOTHIC.TTC",
	"C:/Windows/Fonts/msyh.ttc",
	"/System/Library/Fonts/AppleSDGothicNeo.ttc",
	"/System/Library/Fonts/Helvetica.ttc",
	"/Library/Fonts/Arial Unicode.ttf",
	"/usr/share/fonts/truetype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/truetype/noto/NotoSansCJKjp-Regular.otf",
	"/usr/share/fonts/truetype/wqy/wqy-microhei.ttc",
}

// FontManager resolves one font for the whole run and hands out sized faces.
// Faces are cached per size; a face itself is not safe for concurrent use,
// so parallel workers take a Clone and draw with their own cache.
type FontManager struct {
	fnt  *opentype.Font
	path string // "" when the embedded fallback is in use

	mu    sync.Mutex
	faces map[int]font.Face
}

// NewFontManager loads the font at fontPath, or walks the candidate list
// when fontPath is empty, falling back to the embedded Go Regular font.
func NewFontManager(fontPath string) (*FontManager, error) {
	if fontPath != "" {
		fnt, err := parseFontFile(fontPath)
		if err != nil {
			return nil, err
		}
		return newFontManager(fnt, fontPath), nil
	}

	for _, candidate := range fontCandidates {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		fnt, err := parseFontFile(candidate)
		if err != nil {
			continue
		}
		return newFontManager(fnt, candidate), nil
	}

	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("%w: embedded fallback: %v", ErrFontLoad, err)
	}
	return newFontManager(fnt, ""), nil
}

func newFontManager(fnt *opentype.Font, path string) *FontManager {
	return &FontManager{fnt: fnt, path: path, faces: make(map[int]font.Face)}
}

// parseFontFile reads and parses a .ttf/.otf file or the first font of a
// .ttc/.otc collection.
func parseFontFile(path string) (*opentype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", path, err)
	}

	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".ttc") || strings.HasSuffix(lower, ".otc") {
		coll, err := opentype.ParseCollection(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrFontLoad, path, err)
		}
		fnt, err := coll.Font(0)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrFontLoad, path, err)
		}
		return fnt, nil
	}

	fnt, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFontLoad, path, err)
	}
	return fnt, nil
}

// Path returns the resolved font file, or "" for the embedded fallback.
func (fm *FontManager) Path() string {
	return fm.path
}

// Face returns a cached face for the given pixel size.
func (fm *FontManager) Face(size int) (font.Face, error) {
	fm.mu.Lock()
	defer fm.mu.Unlock()

	if face, ok := fm.faces[size]; ok {
		return face, nil
	}

	face, err := opentype.NewFace(fm.fnt, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: size %d: %v", ErrFontLoad, size, err)
	}
	fm.faces[size] = face
	return face, nil
}

// Clone shares the parsed font but starts a fresh face cache.
func (fm *FontManager) Clone() *FontManager {
	return newFontManager(fm.fnt, fm.path)
}

// MeasureString returns the rendered advance width of s, rounded up.
func MeasureString(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}

// LineHeight returns ascent+descent for the face, rounded up.
func LineHeight(face font.Face) int {
	m := face.Metrics()
	return (m.Ascent + m.Descent).Ceil()
}
