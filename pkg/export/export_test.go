package export

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.RGBA{200, 100, 50, 255}}, image.Point{}, draw.Src)
	return img
}

func decodePNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	return img
}

func TestExportWritesCategoryFile(t *testing.T) {
	root := t.TempDir()
	e, err := NewExporter(filepath.Join(root, "out"))
	require.NoError(t, err)

	require.NoError(t, e.Export(solid(740, 640), "hi", "main", 370, 320))

	path := filepath.Join(root, "out", "main", "hi_main.png")
	img := decodePNG(t, path)
	assert.Equal(t, 370, img.Bounds().Dx())
	assert.Equal(t, 320, img.Bounds().Dy())
}

func TestExportCropsMismatchedAspect(t *testing.T) {
	e, err := NewExporter(t.TempDir())
	require.NoError(t, err)

	// 740×640 into a square: center-crop, never distort.
	require.NoError(t, e.Export(solid(740, 640), "hi", "store", 240, 240))

	img := decodePNG(t, filepath.Join(e.Root(), "store", "hi_store.png"))
	assert.Equal(t, 240, img.Bounds().Dx())
	assert.Equal(t, 240, img.Bounds().Dy())
}

func TestExportSkipsNonPositiveSize(t *testing.T) {
	e, err := NewExporter(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, e.Export(solid(100, 100), "hi", "tab", 0, 74))
	_, statErr := os.Stat(filepath.Join(e.Root(), "tab"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestExportOverwritesOnSlugCollision(t *testing.T) {
	e, err := NewExporter(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, e.Export(solid(100, 100), "dup", "main", 40, 40))
	first, err := os.ReadFile(filepath.Join(e.Root(), "main", "dup_main.png"))
	require.NoError(t, err)

	big := image.NewRGBA(image.Rect(0, 0, 100, 100))
	draw.Draw(big, big.Bounds(), &image.Uniform{color.RGBA{0, 0, 0, 255}}, image.Point{}, draw.Src)
	require.NoError(t, e.Export(big, "dup", "main", 40, 40))

	second, err := os.ReadFile(filepath.Join(e.Root(), "main", "dup_main.png"))
	require.NoError(t, err)
	assert.NotEqual(t, first, second, "later sticker silently replaces the earlier file")
}

func TestExportSetIcon(t *testing.T) {
	e, err := NewExporter(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, e.ExportSetIcon(solid(480, 480), 240))

	img := decodePNG(t, filepath.Join(e.Root(), "set_icon", "set_icon.png"))
	assert.Equal(t, 240, img.Bounds().Dx())
	assert.Equal(t, 240, img.Bounds().Dy())
}

func TestNewExporterIdempotent(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "out")
	_, err := NewExporter(root)
	require.NoError(t, err)
	_, err = NewExporter(root)
	assert.NoError(t, err)
}
