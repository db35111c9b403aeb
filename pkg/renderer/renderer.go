// Package renderer shows depth and color frames with classification
// overlays and tells the pipeline when to stop pumping frames.
//
// A Renderer is driven by a single goroutine: it does not lock the
// surfaces it owns.
package renderer

import (
	"errors"
	"fmt"
	"time"

	"github.com/sighpp/sightview/pkg/classification"
	"github.com/sighpp/sightview/pkg/display"
	"github.com/sighpp/sightview/pkg/frame"
	"github.com/sighpp/sightview/pkg/logger"
	"github.com/sighpp/sightview/pkg/overlay"
)

const (
	DepthTitle = "Depth Image"
	ColorTitle = "Color Image"

	// KeyWait is how long each readiness query pumps window events.
	KeyWait = time.Millisecond
)

type Options struct {
	ShowDepth bool
	ShowColor bool
}

type Renderer struct {
	backend  display.Backend
	composer *overlay.Composer

	showDepth bool
	showColor bool

	log      *logger.Logger
	mismatch *logger.Logger
}

// New creates the enabled surfaces right away.
// A surface that fails to open is not an error here: the readiness query
// reports it later.
func New(backend display.Backend, opts Options, log *logger.Logger) *Renderer {
	if log == nil {
		log = logger.Default()
	}
	log.Info().Msg("Constructing output interface")
	r := &Renderer{
		backend:   backend,
		composer:  overlay.NewComposer(overlay.DefaultFace()),
		showDepth: opts.ShowDepth,
		showColor: opts.ShowColor,
		log:       log,
		mismatch:  log.Sampled(100),
	}
	if r.showDepth {
		r.create(DepthTitle)
	}
	if r.showColor {
		r.create(ColorTitle)
	}
	log.Info().Bool("depth", r.showDepth).Bool("color", r.showColor).Msg("Constructed output interface")
	return r
}

func (r *Renderer) create(title string) {
	if err := r.backend.Create(title); err != nil {
		r.log.Error().Err(err).Str("surface", title).Msg("surface was not created")
		return
	}
	r.log.Debug().Str("surface", title).Msg("surface created")
}

// StreamToWindows shows one pipeline tick on the enabled surfaces.
// All buffers are borrowed for the duration of the call.
func (r *Renderer) StreamToWindows(depth frame.Frame, depthBuf, color *frame.PixelBuffer, groups []classification.Prioritised) error {
	if r.showDepth {
		if err := r.DepthWindow(depth); err != nil {
			return err
		}
	}
	if r.showColor {
		if err := r.ColorWindow(color, depthBuf, groups); err != nil {
			return err
		}
	}
	return nil
}

// DepthWindow shows the depth frame as is, without overlays.
// It fails with frame.ErrInvalidFrameKind if f is not a video frame.
func (r *Renderer) DepthWindow(f frame.Frame) error {
	if !r.showDepth {
		return nil
	}
	buf, err := frame.Adapt(f)
	if err != nil {
		return fmt.Errorf("depth: %w", err)
	}
	if err := r.backend.Show(DepthTitle, buf); err != nil {
		r.log.Warn().Err(err).Msg("depth frame was not shown")
		return err
	}
	framesShown.WithLabelValues("depth").Inc()
	return nil
}

// ColorWindow draws the classification results onto color, converts it to
// the channel order of the display and shows it.
// The depth buffer only gives the extent boxes are clamped to.
func (r *Renderer) ColorWindow(color, depth *frame.PixelBuffer, groups []classification.Prioritised) error {
	if !r.showColor {
		return nil
	}
	if color == nil {
		return errors.New("color: no buffer")
	}

	extent := color.Extent()
	if depth != nil {
		extent = depth.Extent()
		if extent != color.Extent() {
			r.mismatch.Warn().
				Stringer("color", color.Extent().Size()).
				Stringer("depth", extent.Size()).
				Msg("color and depth extents differ, boxes are clamped to depth")
		}
	}

	st := r.composer.Compose(color, extent, groups)
	overlaysDrawn.Add(float64(st.Objects))
	overlaysClipped.Add(float64(st.Clipped))

	out := color.Convert(r.backend.NativeOrder())
	if err := r.backend.Show(ColorTitle, out); err != nil {
		r.log.Warn().Err(err).Msg("color frame was not shown")
		return err
	}
	framesShown.WithLabelValues("color").Inc()
	return nil
}

// ShouldReceiveNewFrames pumps the window events and reports whether the
// pipeline may send the next frame. It is false once a key was pressed or
// an enabled surface is gone, and always true with no surfaces enabled.
func (r *Renderer) ShouldReceiveNewFrames() bool {
	return r.WaitKey() && r.IsDepthWindowReady() && r.IsColorWindowReady()
}

// WaitKey is false when the user pressed a key.
func (r *Renderer) WaitKey() bool {
	if !r.showDepth && !r.showColor {
		return true
	}
	if key := r.backend.WaitKey(KeyWait); key >= 0 {
		r.log.Info().Int("key", key).Msg("key pressed, stopping")
		readinessStops.WithLabelValues("key").Inc()
		return false
	}
	return true
}

func (r *Renderer) IsDepthWindowReady() bool {
	return !r.showDepth || r.ready(DepthTitle, "depth")
}

func (r *Renderer) IsColorWindowReady() bool {
	return !r.showColor || r.ready(ColorTitle, "color")
}

func (r *Renderer) ready(title, cause string) bool {
	v, err := r.backend.Property(title)
	if err == nil && v >= 0 {
		return true
	}
	r.log.Info().Err(err).Str("surface", title).Msg("surface is gone, stopping")
	readinessStops.WithLabelValues(cause).Inc()
	return false
}

// Close releases the surfaces.
func (r *Renderer) Close() error { return r.backend.Close() }
