// Package display abstracts the windowing system the frames are shown in.
//
// Windowing systems keep their surfaces in a process-wide registry keyed by
// title. A Backend wraps that registry so the renderer never touches the
// global state directly and tests can run without a screen.
package display

import (
	"errors"
	"time"

	"github.com/sighpp/sightview/pkg/frame"
)

// ErrSurfaceUnavailable is returned when a surface cannot be created,
// shown or queried.
var ErrSurfaceUnavailable = errors.New("surface unavailable")

// NoKey is returned by WaitKey when no key was pressed.
const NoKey = -1

// Backend is a set of named, resizable display surfaces.
// Backends are not safe for concurrent use.
type Backend interface {
	// Create makes a surface visible under title.
	Create(title string) error
	// Show replaces the contents of the surface with buf.
	// The buffer is only borrowed for the duration of the call.
	Show(title string, buf *frame.PixelBuffer) error
	// Property reads a live property of the surface. A negative value
	// means the surface was destroyed.
	Property(title string) (float64, error)
	// WaitKey pumps the event loop for at most timeout and returns
	// the code of a pressed key or NoKey.
	WaitKey(timeout time.Duration) int
	// NativeOrder is the channel order the surfaces expect.
	NativeOrder() frame.Order
	Close() error
}

const (
	Headless = "headless"
	OpenCV   = "opencv"
	SDL      = "sdl"
)

// Names lists the known backend names.
func Names() []string { return []string{OpenCV, SDL, Headless} }
