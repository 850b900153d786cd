package icon

import (
	"image"
	"image/color"
)

// newTestSource builds an opaque gradient source so resampling has real
// detail to work with.
func newTestSource(w, h int) *SourceImage {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x % 256),
				G: uint8(y % 256),
				B: uint8((x + y) % 256),
				A: 255,
			})
		}
	}
	return &SourceImage{Pixels: img, Width: w, Height: h, Format: "png"}
}

// newTransparentSource is fully transparent everywhere.
func newTransparentSource(w, h int) *SourceImage {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	return &SourceImage{Pixels: img, Width: w, Height: h, Format: "png"}
}
