// Package imaging provides aspect-aware raster scaling: cover-fit cropping,
// plain resizing, and shrink-only thumbnails. All scaling uses Catmull-Rom
// resampling for quality at the large downscale factors supersampling needs.
package imaging

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
)

// aspectTolerance is the relative ratio difference below which two aspect
// ratios count as equal and a plain resize is safe.
const aspectTolerance = 0.01

// Resize scales src to exactly w×h without preserving aspect ratio.
func Resize(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// Fit center-crops src to the target aspect ratio and scales the crop to
// exactly w×h. Content proportions are never distorted.
func Fit(src image.Image, w, h int) *image.RGBA {
	sb := src.Bounds()
	srcW, srcH := sb.Dx(), sb.Dy()
	targetRatio := float64(w) / float64(h)
	srcRatio := float64(srcW) / float64(srcH)

	crop := sb
	if srcRatio > targetRatio {
		cropW := int(math.Round(float64(srcH) * targetRatio))
		offset := (srcW - cropW) / 2
		crop = image.Rect(sb.Min.X+offset, sb.Min.Y, sb.Min.X+offset+cropW, sb.Max.Y)
	} else if srcRatio < targetRatio {
		cropH := int(math.Round(float64(srcW) / targetRatio))
		offset := (srcH - cropH) / 2
		crop = image.Rect(sb.Min.X, sb.Min.Y+offset, sb.Max.X, sb.Min.Y+offset+cropH)
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, xdraw.Src, nil)
	return dst
}

// Thumbnail scales src down to fit within maxW×maxH, preserving aspect
// ratio and never upscaling.
func Thumbnail(src image.Image, maxW, maxH int) *image.RGBA {
	sb := src.Bounds()
	srcW, srcH := sb.Dx(), sb.Dy()

	if srcW <= maxW && srcH <= maxH {
		dst := image.NewRGBA(image.Rect(0, 0, srcW, srcH))
		xdraw.Copy(dst, image.Point{}, src, sb, xdraw.Src, nil)
		return dst
	}

	scale := math.Min(float64(maxW)/float64(srcW), float64(maxH)/float64(srcH))
	w := max(1, int(float64(srcW)*scale))
	h := max(1, int(float64(srcH)*scale))
	return Resize(src, w, h)
}

// SameAspect reports whether src's aspect ratio matches w:h within the
// tolerance that makes a plain resize indistinguishable from a crop.
func SameAspect(src image.Image, w, h int) bool {
	sb := src.Bounds()
	srcRatio := float64(sb.Dx()) / float64(sb.Dy())
	targetRatio := float64(w) / float64(h)
	return math.Abs(srcRatio-targetRatio) <= aspectTolerance
}
