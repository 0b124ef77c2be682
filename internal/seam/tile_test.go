package seam

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// createSplitImage creates a width×height image whose left half (x < split)
// is left and the rest right.
func createSplitImage(width, height, split int, left, right color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x < split {
				img.Set(x, y, left)
			} else {
				img.Set(x, y, right)
			}
		}
	}
	return img
}

// createGradientImage encodes each pixel's position in its colour:
// R = x, G = y, B = 0.
func createGradientImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 0, 255})
		}
	}
	return img
}

func TestSampler_At(t *testing.T) {
	s := newSampler(createGradientImage(4, 3), false)

	tests := []struct {
		name string
		x, y int
		want Sample
	}{
		{"origin", 0, 0, Sample{Color{0, 0, 0, 255}, true}},
		{"inside", 3, 2, Sample{Color{3, 2, 0, 255}, true}},
		{"right of image", 4, 0, Sample{}},
		{"below image", 0, 3, Sample{}},
		{"negative x", -1, 1, Sample{}},
		{"negative y", 1, -1, Sample{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, s.at(tt.x, tt.y)); diff != "" {
				t.Errorf("at(%d,%d) mismatch (-want +got):\n%s", tt.x, tt.y, diff)
			}
		})
	}
}

func TestSampler_At_Wrap(t *testing.T) {
	s := newSampler(createGradientImage(4, 3), true)

	tests := []struct {
		x, y  int
		wantR uint8
		wantG uint8
	}{
		{4, 0, 0, 0},
		{-1, 0, 3, 0},
		{1, -1, 1, 2},
		{9, 7, 1, 1},
	}

	for _, tt := range tests {
		got := s.at(tt.x, tt.y)
		if !got.OK || got.Color.R != tt.wantR || got.Color.G != tt.wantG {
			t.Errorf("at(%d,%d) = %+v, want R=%d G=%d", tt.x, tt.y, got, tt.wantR, tt.wantG)
		}
	}
}

func TestSampler_At_OffsetBounds(t *testing.T) {
	// Sub-images keep their parent's coordinates; sampling is origin-relative.
	sub := createGradientImage(8, 8).SubImage(image.Rect(2, 3, 6, 7))
	s := newSampler(sub, false)

	got := s.at(0, 0)
	if !got.OK || got.Color.R != 2 || got.Color.G != 3 {
		t.Errorf("at(0,0) = %+v, want pixel (2,3)", got)
	}
	if s.at(4, 0).OK {
		t.Error("at(4,0) should be outside a 4-pixel-wide sub-image")
	}
}

func TestSampler_Tile(t *testing.T) {
	s := newSampler(createGradientImage(10, 10), false)

	t.Run("vertical", func(t *testing.T) {
		// line runs along x, location along y
		samples := s.tile(Vertical, 2, 5, 2)
		var got []Color
		for _, smp := range samples {
			got = append(got, smp.Color)
		}
		want := []Color{{2, 5, 0, 255}, {2, 6, 0, 255}, {3, 5, 0, 255}, {3, 6, 0, 255}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("tile mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("horizontal", func(t *testing.T) {
		samples := s.tile(Horizontal, 2, 5, 2)
		var got []Color
		for _, smp := range samples {
			got = append(got, smp.Color)
		}
		want := []Color{{5, 2, 0, 255}, {5, 3, 0, 255}, {6, 2, 0, 255}, {6, 3, 0, 255}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("tile mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("partially outside", func(t *testing.T) {
		samples := s.tile(Vertical, 9, 0, 2)
		present := 0
		for _, smp := range samples {
			if smp.OK {
				present++
			}
		}
		if len(samples) != 4 || present != 2 {
			t.Errorf("got %d samples with %d present, want 4 with 2", len(samples), present)
		}
	})
}

func TestAverageSamples(t *testing.T) {
	samples := []Sample{
		{Color{100, 0, 0, 255}, true},
		{},
		{Color{200, 50, 0, 255}, true},
		{},
	}

	got, err := averageSamples(samples)
	if err != nil {
		t.Fatalf("averageSamples failed: %v", err)
	}
	if diff := cmp.Diff(Color{150, 25, 0, 255}, got); diff != "" {
		t.Errorf("averageSamples mismatch (-want +got):\n%s", diff)
	}

	if _, err := averageSamples([]Sample{{}, {}}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("all absent: got %v, want ErrInvalidInput", err)
	}
}
