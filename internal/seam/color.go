package seam

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Luminance weights for perceptual brightness (ITU-R BT.709).
const (
	lumaRed   = 0.2126
	lumaGreen = 0.7152
	lumaBlue  = 0.0722
)

// channelMax is the largest value an 8-bit channel can hold.
const channelMax = 255.0

// Color is an 8-bit, non-premultiplied RGBA colour.
//
// Color implements color.Color so it can be painted directly onto any
// draw.Image or gg context.
type Color struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
	A uint8 `json:"a"` // Alpha component (0 = transparent, 255 = opaque)
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// Hex formats the colour as "#rrggbb". Alpha is not included.
func (c Color) Hex() string {
	return colorful.Color{
		R: float64(c.R) / channelMax,
		G: float64(c.G) / channelMax,
		B: float64(c.B) / channelMax,
	}.Hex()
}

// ColorOf converts any color.Color into an 8-bit non-premultiplied Color.
func ColorOf(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

// ColorDifference returns how far apart two colours are as a fraction of the
// full channel range.
//
// Each of the red, green and blue channels contributes |a-b|/255 and the three
// contributions are averaged, so the result lies in [0,1]. Alpha is ignored.
// The function is symmetric and returns 0 exactly when the RGB channels match.
func ColorDifference(c1, c2 Color) float64 {
	red := channelDifference(c1.R, c2.R)
	green := channelDifference(c1.G, c2.G)
	blue := channelDifference(c1.B, c2.B)

	return (red + green + blue) / 3
}

// BrightnessDifference returns the difference in perceptual brightness of two
// colours as a fraction in [0,1].
//
// Brightness is computed as:
//
//	L = 0.2126*R + 0.7152*G + 0.0722*B
//
// and the result is |L1 - L2| / 255, clamped to 1 against rounding.
func BrightnessDifference(c1, c2 Color) float64 {
	return math.Min(math.Abs(luminance(c1)-luminance(c2))/channelMax, 1)
}

// AverageColor returns the per-channel arithmetic mean of colors.
//
// Channel sums are divided with truncating integer division. The alpha channel
// is averaged only when useAlpha is true; otherwise the result is opaque.
//
// An empty slice yields an error wrapping ErrInvalidInput.
func AverageColor(colors []Color, useAlpha bool) (Color, error) {
	if len(colors) == 0 {
		return Color{}, fmt.Errorf("%w: cannot average an empty colour set", ErrInvalidInput)
	}

	var r, g, b, a int
	for _, c := range colors {
		r += int(c.R)
		g += int(c.G)
		b += int(c.B)
		a += int(c.A)
	}

	n := len(colors)
	avg := Color{
		R: uint8(r / n),
		G: uint8(g / n),
		B: uint8(b / n),
		A: math.MaxUint8,
	}
	if useAlpha {
		avg.A = uint8(a / n)
	}

	return avg, nil
}

func channelDifference(a, b uint8) float64 {
	return math.Abs(float64(a)-float64(b)) / channelMax
}

func luminance(c Color) float64 {
	return float64(c.R)*lumaRed + float64(c.G)*lumaGreen + float64(c.B)*lumaBlue
}
