package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/clone"
)

// Prepare converts img to RGBA for fast pixel access.
//
// A positive blurRadius applies a Gaussian blur first, which suppresses
// per-pixel noise in photographic textures so that the scan responds to
// broad colour shifts rather than grain.
func Prepare(img image.Image, blurRadius float64) *image.RGBA {
	if blurRadius > 0 {
		return blur.Gaussian(img, blurRadius)
	}
	return clone.AsRGBA(img)
}
