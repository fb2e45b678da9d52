// Package export writes composed sticker artwork to disk at the published
// sizes. Each category gets its own subdirectory under the output root;
// directories are created on demand and a repeated slug silently overwrites
// the earlier file.
package export

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/xob0t/GoSticker/pkg/imaging"
)

// setIconDir and setIconFile name the single per-set asset.
const (
	setIconDir  = "set_icon"
	setIconFile = "set_icon.png"
)

// Exporter resizes composed images to their target dimensions and writes
// them as PNG files under a fixed output root.
type Exporter struct {
	root string
}

// NewExporter creates the output root (idempotently) and returns an
// exporter rooted there.
func NewExporter(root string) (*Exporter, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &Exporter{root: root}, nil
}

// Root returns the output root directory.
func (e *Exporter) Root() string {
	return e.root
}

// Export writes img as <root>/<category>/<slug>_<category>.png at w×h.
// A source whose aspect ratio already matches is plainly resized; otherwise
// it is center-cropped to the target ratio first. Non-positive dimensions
// are skipped without error.
func (e *Exporter) Export(img image.Image, slug, category string, w, h int) error {
	if w <= 0 || h <= 0 {
		return nil
	}

	dir := filepath.Join(e.root, category)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create %s dir: %w", category, err)
	}

	var out *image.RGBA
	if imaging.SameAspect(img, w, h) {
		out = imaging.Resize(img, w, h)
	} else {
		out = imaging.Fit(img, w, h)
	}

	return writePNG(filepath.Join(dir, fmt.Sprintf("%s_%s.png", slug, category)), out)
}

// ExportSetIcon center-crops img to a size×size square and writes it as
// <root>/set_icon/set_icon.png.
func (e *Exporter) ExportSetIcon(img image.Image, size int) error {
	dir := filepath.Join(e.root, setIconDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create set icon dir: %w", err)
	}
	return writePNG(filepath.Join(dir, setIconFile), imaging.Fit(img, size, size))
}

// writePNG encodes img to a PNG file at the given path.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode PNG: %w", err)
	}
	return nil
}
