package seam

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync/atomic"

	"github.com/go-logr/logr"

	"github.com/ironsheep/seamtest/internal/storage"
)

// DifferenceThreshold is the fraction above which a colour or brightness
// difference counts as significant.
const DifferenceThreshold = 0.1

// Default visualisation names used when Params leaves them empty.
const (
	DefaultColorOutput      = "colorDiffVisual.png"
	DefaultBrightnessOutput = "brightDiffVisual.png"
)

// Params describes one scan.
type Params struct {
	// SeamOffset is the position of the seam along the seam normal. The
	// compare tile starts at the seam, the base tile ends just before it.
	SeamOffset int `json:"seam_offset"`

	// TileSize is the side of the square sampling block in pixels.
	TileSize int `json:"tile_size"`

	// StepSize determines the number of steps: axis length / StepSize.
	StepSize int `json:"step_size"`

	// Orientation selects the scanned axis.
	Orientation Orientation `json:"orientation"`

	// Wrap folds out-of-bounds positions back into the image instead of
	// treating them as absent, as when the texture is tiled.
	Wrap bool `json:"wrap"`

	// ColorOutput and BrightnessOutput name the two visualisations.
	ColorOutput      string `json:"color_output,omitempty"`
	BrightnessOutput string `json:"brightness_output,omitempty"`
}

// Difference is the outcome of a single scan step.
type Difference struct {
	Step              int     `json:"step"`
	Base              Color   `json:"base"`
	Compare           Color   `json:"compare"`
	ColorDiff         float64 `json:"color_diff"`
	BrightDiff        float64 `json:"bright_diff"`
	ColorSignificant  bool    `json:"color_significant"`
	BrightSignificant bool    `json:"bright_significant"`

	// Skipped is set when one of the tiles had no pixel inside the image.
	Skipped bool `json:"skipped,omitempty"`
}

// Result summarises a completed scan.
type Result struct {
	TotalSteps            int          `json:"total_steps"`
	SignificantColor      int          `json:"significant_color"`
	SignificantBrightness int          `json:"significant_brightness"`
	Skipped               int          `json:"skipped"`
	Steps                 []Difference `json:"steps"`
	ColorOutput           string       `json:"color_output"`
	BrightnessOutput      string       `json:"brightness_output"`
}

// SeamDetected reports whether any step had a significant difference.
func (r *Result) SeamDetected() bool {
	return r.SignificantColor > 0 || r.SignificantBrightness > 0
}

// ScanState is a snapshot of a checker's progress.
type ScanState struct {
	Running     bool `json:"running"`
	TotalSteps  int  `json:"total_steps"`
	CurrentStep int  `json:"current_step"`
}

// Checker scans a source image for a seam at a given offset.
//
// A Checker may run many scans, one at a time. Calling CheckOffset while a
// scan is in progress fails with ErrState. Apart from that rejection the
// Checker is not safe for concurrent use.
type Checker struct {
	img   image.Image
	store storage.Storage
	log   logr.Logger

	running     atomic.Bool
	totalSteps  int
	currentStep int
}

// NewChecker creates an idle checker for img. Visualisations are written to
// store and progress is reported through log.
func NewChecker(img image.Image, store storage.Storage, log logr.Logger) *Checker {
	return &Checker{
		img:   img,
		store: store,
		log:   log,
	}
}

// State returns the current scan progress.
func (c *Checker) State() ScanState {
	return ScanState{
		Running:     c.running.Load(),
		TotalSteps:  c.totalSteps,
		CurrentStep: c.currentStep,
	}
}

// CheckOffset compares tiles on both sides of p.SeamOffset along the whole
// scanned axis and writes a colour and a brightness visualisation.
//
// Parameter errors wrap ErrInvalidInput and a concurrent call wraps
// ErrState; neither changes the checker's state. The context is checked once
// per step. When saving a visualisation fails the populated Result is
// returned together with an error wrapping ErrIO.
func (c *Checker) CheckOffset(ctx context.Context, p Params) (*Result, error) {
	if c.running.Load() {
		return nil, fmt.Errorf("%w: scan already running", ErrState)
	}

	axisLength, err := c.validate(p)
	if err != nil {
		return nil, err
	}

	if !c.running.CompareAndSwap(false, true) {
		return nil, fmt.Errorf("%w: scan already running", ErrState)
	}
	defer c.running.Store(false)

	c.totalSteps = axisLength / p.StepSize
	c.currentStep = 0
	log := c.log.WithValues("orientation", p.Orientation.Name(true), "seamOffset", p.SeamOffset)
	log.Info("Offset checking started", "steps", c.totalSteps,
		p.Orientation.DimensionName(true), axisLength)

	colorDrawer := NewDrawer(c.store, log.WithName("color"), p.TileSize, c.totalSteps)
	brightDrawer := NewDrawer(c.store, log.WithName("brightness"), p.TileSize, c.totalSteps)
	if err := colorDrawer.Start(); err != nil {
		return nil, err
	}
	if err := brightDrawer.Start(); err != nil {
		return nil, err
	}

	res := &Result{
		TotalSteps: c.totalSteps,
		Steps:      make([]Difference, 0, c.totalSteps),
	}
	src := newSampler(c.img, p.Wrap)
	baseLine := p.SeamOffset - p.TileSize
	compareLine := p.SeamOffset

	for c.currentStep < c.totalSteps {
		if err := ctx.Err(); err != nil {
			_ = colorDrawer.Stop()
			_ = brightDrawer.Stop()
			log.Info("Offset checking cancelled", "step", c.currentStep)
			return nil, fmt.Errorf("scan cancelled at step %d: %w", c.currentStep, err)
		}

		location := c.currentStep * p.TileSize
		d := compare(
			src.tile(p.Orientation, baseLine, location, p.TileSize),
			src.tile(p.Orientation, compareLine, location, p.TileSize),
		)
		d.Step = c.currentStep

		if err := colorDrawer.Step(d.Base, d.Compare, d.ColorSignificant); err != nil {
			return nil, err
		}
		if err := brightDrawer.Step(d.Base, d.Compare, d.BrightSignificant); err != nil {
			return nil, err
		}

		res.Steps = append(res.Steps, d)
		switch {
		case d.Skipped:
			res.Skipped++
			log.Info("Tile outside image, skipped", "step", d.Step)
		default:
			if d.ColorSignificant {
				res.SignificantColor++
			}
			if d.BrightSignificant {
				res.SignificantBrightness++
			}
			log.Info("Tile compared", "step", d.Step,
				"base", d.Base.Hex(), "compare", d.Compare.Hex(),
				"colorPercent", d.ColorDiff*100, "colorSignificant", d.ColorSignificant,
				"brightnessPercent", d.BrightDiff*100, "brightnessSignificant", d.BrightSignificant)
		}

		c.currentStep++
	}

	if err := colorDrawer.Stop(); err != nil {
		return nil, err
	}
	if err := brightDrawer.Stop(); err != nil {
		return nil, err
	}

	var saveErrs []error
	res.ColorOutput, err = colorDrawer.Save(ctx, outputName(p.ColorOutput, DefaultColorOutput))
	if err != nil {
		saveErrs = append(saveErrs, err)
	}
	res.BrightnessOutput, err = brightDrawer.Save(ctx, outputName(p.BrightnessOutput, DefaultBrightnessOutput))
	if err != nil {
		saveErrs = append(saveErrs, err)
	}

	log.Info("Finished",
		"steps", res.TotalSteps,
		"significantColor", res.SignificantColor,
		"significantBrightness", res.SignificantBrightness,
		"skipped", res.Skipped)

	if len(saveErrs) > 0 {
		err := errors.Join(saveErrs...)
		log.Error(err, "Failed to save visualisation")
		return res, err
	}
	return res, nil
}

// validate checks p against the source image and returns the scanned axis
// length.
func (c *Checker) validate(p Params) (int, error) {
	if !p.Orientation.Valid() {
		return 0, fmt.Errorf("%w: unknown orientation %d", ErrInvalidInput, int(p.Orientation))
	}
	// Zero is allowed: the seam lies on the image edge.
	if p.SeamOffset < 0 {
		return 0, fmt.Errorf("%w: seam offset must be zero or larger, got %d", ErrInvalidInput, p.SeamOffset)
	}
	if p.TileSize <= 0 {
		return 0, fmt.Errorf("%w: tile size must be larger than zero, got %d", ErrInvalidInput, p.TileSize)
	}
	if p.StepSize <= 0 {
		return 0, fmt.Errorf("%w: step size must be larger than zero, got %d", ErrInvalidInput, p.StepSize)
	}

	axisLength := p.Orientation.AxisLength(c.img.Bounds())
	dimension := p.Orientation.DimensionName(true)
	if p.StepSize > axisLength {
		return 0, fmt.Errorf("%w: step size %d exceeds image %s %d", ErrInvalidInput, p.StepSize, dimension, axisLength)
	}
	if p.TileSize > axisLength {
		return 0, fmt.Errorf("%w: tile size %d exceeds image %s %d", ErrInvalidInput, p.TileSize, dimension, axisLength)
	}

	return axisLength, nil
}

// compare reduces two tiles to their average colours and scores them.
func compare(base, other []Sample) Difference {
	baseAvg, baseErr := averageSamples(base)
	otherAvg, otherErr := averageSamples(other)
	if baseErr != nil || otherErr != nil {
		// Both swatches stay transparent even when one side had samples.
		return Difference{Skipped: true}
	}

	colorDiff := ColorDifference(baseAvg, otherAvg)
	brightDiff := BrightnessDifference(baseAvg, otherAvg)

	return Difference{
		Base:              baseAvg,
		Compare:           otherAvg,
		ColorDiff:         colorDiff,
		BrightDiff:        brightDiff,
		ColorSignificant:  colorDiff > DifferenceThreshold,
		BrightSignificant: brightDiff > DifferenceThreshold,
	}
}

func outputName(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}
