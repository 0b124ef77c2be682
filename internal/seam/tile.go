package seam

import (
	"image"
)

// Sample is one pixel read from a tile. OK is false when the position fell
// outside the image; such samples are left out of averages.
type Sample struct {
	Color Color
	OK    bool
}

// sampler reads pixels relative to the image origin.
type sampler struct {
	img    image.Image
	bounds image.Rectangle
	wrap   bool
}

func newSampler(img image.Image, wrap bool) *sampler {
	return &sampler{img: img, bounds: img.Bounds(), wrap: wrap}
}

// at returns the pixel at (x, y), measured from the top-left corner of the
// image. Positions outside the image are absent unless wrapping is enabled,
// in which case they are folded back into the image as a tiled texture would.
func (s *sampler) at(x, y int) Sample {
	w, h := s.bounds.Dx(), s.bounds.Dy()
	if w == 0 || h == 0 {
		return Sample{}
	}
	if s.wrap {
		x = ((x % w) + w) % w
		y = ((y % h) + h) % h
	}
	if x < 0 || y < 0 || x >= w || y >= h {
		return Sample{}
	}
	return Sample{
		Color: ColorOf(s.img.At(s.bounds.Min.X+x, s.bounds.Min.Y+y)),
		OK:    true,
	}
}

// tile samples a size×size block whose seam-normal edge starts at line and
// whose scan-axis edge starts at location.
//
// For Vertical scans the seam runs along x, so line is an x coordinate and
// location a y coordinate; Horizontal swaps the two.
func (s *sampler) tile(o Orientation, line, location, size int) []Sample {
	samples := make([]Sample, 0, size*size)
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			if o == Vertical {
				samples = append(samples, s.at(line+i, location+j))
			} else {
				samples = append(samples, s.at(location+i, line+j))
			}
		}
	}
	return samples
}

// averageSamples averages the present samples of a tile. It fails with
// ErrInvalidInput when every sample is absent.
func averageSamples(samples []Sample) (Color, error) {
	present := make([]Color, 0, len(samples))
	for _, s := range samples {
		if s.OK {
			present = append(present, s.Color)
		}
	}
	return AverageColor(present, false)
}
