// Package opencv shows surfaces as OpenCV highgui windows.
package opencv

import (
	"fmt"
	"time"

	"github.com/sighpp/sightview/pkg/display"
	"github.com/sighpp/sightview/pkg/frame"
	"github.com/sighpp/sightview/pkg/logger"
	"github.com/sighpp/sightview/pkg/thread"

	"gocv.io/x/gocv"
)

type Backend struct {
	windows map[string]*gocv.Window
	log     *logger.Logger
}

func New(log *logger.Logger) *Backend {
	return &Backend{windows: make(map[string]*gocv.Window), log: log}
}

// Create opens a resizable window. highgui reports no errors here; a window
// that failed to open shows up as a negative property later on.
func (b *Backend) Create(title string) error {
	if _, ok := b.windows[title]; ok {
		return nil
	}
	thread.MainMaybe(func() { b.windows[title] = gocv.NewWindow(title) })
	b.log.Debug().Str("window", title).Msg("opencv window opened")
	return nil
}

func (b *Backend) Show(title string, buf *frame.PixelBuffer) error {
	w, ok := b.windows[title]
	if !ok {
		return fmt.Errorf("show %q: %w", title, display.ErrSurfaceUnavailable)
	}
	mat, err := gocv.NewMatFromBytes(buf.Height(), buf.Width(), gocv.MatTypeCV8UC3, buf.Bytes())
	if err != nil {
		return fmt.Errorf("show %q: %v: %w", title, err, display.ErrSurfaceUnavailable)
	}
	defer mat.Close()

	// highgui always reads BGR
	if buf.Order == frame.RGB {
		bgr := gocv.NewMat()
		defer bgr.Close()
		gocv.CvtColor(mat, &bgr, gocv.ColorRGBToBGR)
		thread.MainMaybe(func() { w.IMShow(bgr) })
		return nil
	}
	thread.MainMaybe(func() { w.IMShow(mat) })
	return nil
}

// Property reads the autosize flag: 0 for the normal windows made here,
// negative once the user closed the window.
func (b *Backend) Property(title string) (v float64, err error) {
	w, ok := b.windows[title]
	if !ok {
		return -1, fmt.Errorf("query %q: %w", title, display.ErrSurfaceUnavailable)
	}
	thread.MainMaybe(func() { v = w.GetWindowProperty(gocv.WindowPropertyAutosize) })
	return v, nil
}

// WaitKey runs the highgui event loop, which is shared by all windows.
func (b *Backend) WaitKey(timeout time.Duration) int {
	ms := int(timeout / time.Millisecond)
	if ms < 1 {
		ms = 1
	}
	for _, w := range b.windows {
		key := display.NoKey
		thread.MainMaybe(func() { key = w.WaitKey(ms) })
		return key
	}
	return display.NoKey
}

func (b *Backend) NativeOrder() frame.Order { return frame.BGR }

func (b *Backend) Close() (err error) {
	for title, w := range b.windows {
		w := w
		if e := thread.MainErrMaybe(w.Close); e != nil && err == nil {
			err = e
		}
		delete(b.windows, title)
	}
	return
}
