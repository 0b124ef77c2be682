package seam

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/go-logr/logr"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/seamtest/internal/storage"
)

// Scale is the number of canvas pixels drawn per sampled pixel.
const Scale = 100

// lightShade is how far the alternate divider shade is blended toward white.
const lightShade = 212.0 / 255.0

var (
	significantShade    = colorful.Color{R: 0, G: 0, B: 1}
	notSignificantShade = colorful.Color{R: 1, G: 0, B: 0}
	white               = colorful.Color{R: 1, G: 1, B: 1}
)

type drawerState int

const (
	drawerIdle drawerState = iota
	drawerStarted
	drawerStopped
)

// Drawer renders one visualisation of a scan: a vertical stack of strips,
// one per step, each showing the base swatch, a divider coloured by
// significance and the compare swatch.
//
// A Drawer moves from idle to started (Start) to stopped (Stop); only a
// stopped drawer can be saved. It is not safe for concurrent use.
type Drawer struct {
	store    storage.Storage
	log      logr.Logger
	tileSize int
	steps    int

	canvas *gg.Context
	state  drawerState
	step   int
}

// NewDrawer creates an idle drawer for a scan of steps tiles of tileSize
// pixels. Saved images are written to store.
func NewDrawer(store storage.Storage, log logr.Logger, tileSize, steps int) *Drawer {
	return &Drawer{
		store:    store,
		log:      log,
		tileSize: tileSize,
		steps:    steps,
	}
}

// Size returns the canvas dimensions in pixels.
func (d *Drawer) Size() (width, height int) {
	return 2*d.tileSize*Scale + Scale, d.steps * d.tileSize * Scale
}

// Start allocates a fresh canvas and resets the step counter.
func (d *Drawer) Start() error {
	if d.state == drawerStarted {
		return fmt.Errorf("%w: drawer already started", ErrState)
	}
	if d.tileSize <= 0 || d.steps <= 0 {
		return fmt.Errorf("%w: drawer needs a positive tile size and step count, got %d and %d",
			ErrInvalidInput, d.tileSize, d.steps)
	}

	d.canvas = gg.NewContext(d.Size())
	d.step = 0
	d.state = drawerStarted
	return nil
}

// Step paints the next strip. The divider is blue when significant is set
// and red otherwise; odd steps use a lighter shade of the same hue.
func (d *Drawer) Step(base, compare Color, significant bool) error {
	if d.state != drawerStarted {
		return fmt.Errorf("%w: drawer cannot step when it is not started", ErrState)
	}
	if d.step >= d.steps {
		return fmt.Errorf("%w: drawer canvas holds %d steps", ErrState, d.steps)
	}

	side := float64(d.tileSize * Scale)
	y := float64(d.step) * side

	d.fill(base, 0, y, side, side)
	d.fill(dividerShade(significant, d.step), side, y, Scale, side)
	d.fill(compare, side+Scale, y, side, side)

	d.step++
	return nil
}

// Stop freezes the canvas. No further steps are accepted until Start.
func (d *Drawer) Stop() error {
	if d.state != drawerStarted {
		return fmt.Errorf("%w: drawer cannot stop when it is not started", ErrState)
	}

	d.state = drawerStopped
	d.log.V(1).Info("Visualisation stopped", "steps", d.step)
	return nil
}

// Image returns the canvas, or nil before the first Start.
func (d *Drawer) Image() image.Image {
	if d.canvas == nil {
		return nil
	}
	return d.canvas.Image()
}

// Save encodes the canvas and writes it under name, returning the storage
// URL. The format follows the file extension; names without a known image
// extension get ".png" appended.
//
// Save fails with ErrState unless the drawer has been stopped, and with an
// error wrapping ErrIO when encoding or writing fails.
func (d *Drawer) Save(ctx context.Context, name string) (string, error) {
	if d.state != drawerStopped {
		return "", fmt.Errorf("%w: drawer must be stopped before saving", ErrState)
	}

	format, err := imaging.FormatFromFilename(name)
	if err != nil {
		name += ".png"
		format = imaging.PNG
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, d.canvas.Image(), format); err != nil {
		return "", fmt.Errorf("%w: failed to encode %s: %w", ErrIO, name, err)
	}

	url, err := d.store.Put(ctx, name, buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("%w: failed to store %s: %w", ErrIO, name, err)
	}

	d.log.Info("Saved visualisation", "url", url, "bytes", buf.Len())
	return url, nil
}

func (d *Drawer) fill(c color.Color, x, y, w, h float64) {
	d.canvas.SetColor(c)
	d.canvas.DrawRectangle(x, y, w, h)
	d.canvas.Fill()
}

func dividerShade(significant bool, step int) color.Color {
	shade := notSignificantShade
	if significant {
		shade = significantShade
	}
	if step%2 == 1 {
		shade = shade.BlendRgb(white, lightShade).Clamped()
	}
	return shade
}
