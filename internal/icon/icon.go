// Package icon normalizes pack icons to the fixed 128x128 PNG format.
//
// A caller-supplied icon replaces whatever pack.png the priority rules
// would have selected. Any raster input the standard decoders understand
// (PNG, JPEG, GIF) is accepted; everything else fails with
// ErrUnsupportedImage and the merge falls back to the pack-priority icon.
package icon

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"

	// Register decoders for the formats users actually upload.
	_ "image/gif"
	_ "image/jpeg"

	"golang.org/x/image/draw"
)

// Size is the edge length of a normalized icon in pixels.
const Size = 128

// ErrUnsupportedImage indicates the supplied bytes could not be decoded
// as a raster image.
var ErrUnsupportedImage = errors.New("unsupported image format")

// Normalize decodes src, center-crops it to a square, resamples to
// Size x Size with a Catmull-Rom filter, and re-encodes as PNG. Sources
// without an alpha channel come out fully opaque.
func Normalize(src []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	square := centerCrop(img)

	out := image.NewRGBA(image.Rect(0, 0, Size, Size))
	bounds := square.Bounds()
	if bounds.Dx() == Size && bounds.Dy() == Size {
		// Already the target size: copy pixels without resampling so
		// normalizing an already-normalized icon is byte-stable.
		draw.Draw(out, out.Bounds(), square, bounds.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(out, out.Bounds(), square, bounds, draw.Src, nil)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("failed to encode icon: %w", err)
	}
	return buf.Bytes(), nil
}

// centerCrop returns the centered square view of img with edge length
// min(width, height). Offsets use floor division, matching the crop the
// original pack tooling produces.
func centerCrop(img image.Image) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == h {
		return img
	}

	side := w
	if h < w {
		side = h
	}
	x0 := bounds.Min.X + (w-side)/2
	y0 := bounds.Min.Y + (h-side)/2
	rect := image.Rect(x0, y0, x0+side, y0+side)

	type subImager interface {
		SubImage(image.Rectangle) image.Image
	}
	if s, ok := img.(subImager); ok {
		return s.SubImage(rect)
	}

	// Decoders in the standard library all return SubImage-capable
	// types; fall back to an explicit copy for anything else.
	out := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.Draw(out, out.Bounds(), img, rect.Min, draw.Src)
	return out
}
