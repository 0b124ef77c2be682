package seam

import (
	"fmt"
	"image"
	"strings"
)

// Orientation selects the axis along which tiles are swept during a scan.
//
// Horizontal scans run along the image width, Vertical scans along the height.
type Orientation int

const (
	// Horizontal sweeps tiles left to right; the seam is a horizontal line.
	Horizontal Orientation = iota
	// Vertical sweeps tiles top to bottom; the seam is a vertical line.
	Vertical
)

var orientationLabels = [...]struct {
	name      string
	dimension string
}{
	Horizontal: {"Horizontal", "Width"},
	Vertical:   {"Vertical", "Height"},
}

// Valid reports whether o is one of the defined orientations.
func (o Orientation) Valid() bool {
	return o == Horizontal || o == Vertical
}

// AxisLength returns the image dimension scanned by this orientation:
// the width of bounds for Horizontal and the height for Vertical.
func (o Orientation) AxisLength(bounds image.Rectangle) int {
	if o == Vertical {
		return bounds.Dy()
	}
	return bounds.Dx()
}

// Name returns "Horizontal" or "Vertical", fully lower case when lower is set.
func (o Orientation) Name(lower bool) string {
	if !o.Valid() {
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
	return caseLabel(orientationLabels[o].name, lower)
}

// DimensionName returns the name of the image dimension scanned by this
// orientation ("Width" or "Height"), fully lower case when lower is set.
func (o Orientation) DimensionName(lower bool) string {
	if !o.Valid() {
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
	return caseLabel(orientationLabels[o].dimension, lower)
}

func (o Orientation) String() string {
	return o.Name(false)
}

// MarshalText encodes the orientation as its lower-case name.
func (o Orientation) MarshalText() ([]byte, error) {
	if !o.Valid() {
		return nil, fmt.Errorf("%w: unknown orientation %d", ErrInvalidInput, int(o))
	}
	return []byte(o.Name(true)), nil
}

// UnmarshalText accepts any form understood by ParseOrientation.
func (o *Orientation) UnmarshalText(text []byte) error {
	parsed, err := ParseOrientation(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// ParseOrientation parses "horizontal", "vertical" or their one letter forms,
// ignoring case.
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "horizontal", "h":
		return Horizontal, nil
	case "vertical", "v":
		return Vertical, nil
	default:
		return 0, fmt.Errorf("%w: unknown orientation %q", ErrInvalidInput, s)
	}
}

func caseLabel(label string, lower bool) string {
	if lower {
		return strings.ToLower(label)
	}
	return label
}
