// Package headless is an in-memory display backend.
// It keeps the last buffer shown on each surface and lets callers close
// surfaces and queue key presses as a user would.
package headless

import (
	"fmt"
	"time"

	"github.com/sighpp/sightview/pkg/display"
	"github.com/sighpp/sightview/pkg/frame"
)

type Surface struct {
	Title     string
	Frames    int
	Last      *frame.PixelBuffer
	destroyed bool
}

type Backend struct {
	order      frame.Order
	surfaces   map[string]*Surface
	keys       []int
	failCreate bool

	polls   int
	queries int
}

type Option func(*Backend)

// WithOrder sets the native channel order, BGR by default.
func WithOrder(o frame.Order) Option { return func(b *Backend) { b.order = o } }

// FailingCreate makes every Create call fail.
func FailingCreate() Option { return func(b *Backend) { b.failCreate = true } }

func New(opts ...Option) *Backend {
	b := &Backend{order: frame.BGR, surfaces: make(map[string]*Surface)}
	for _, o := range opts {
		o(b)
	}
	return b
}

func (b *Backend) Create(title string) error {
	if b.failCreate {
		return fmt.Errorf("create %q: %w", title, display.ErrSurfaceUnavailable)
	}
	if _, ok := b.surfaces[title]; !ok {
		b.surfaces[title] = &Surface{Title: title}
	}
	return nil
}

func (b *Backend) Show(title string, buf *frame.PixelBuffer) error {
	s, ok := b.surfaces[title]
	if !ok || s.destroyed {
		return fmt.Errorf("show %q: %w", title, display.ErrSurfaceUnavailable)
	}
	s.Last = buf.Clone()
	s.Frames++
	return nil
}

func (b *Backend) Property(title string) (float64, error) {
	b.queries++
	s, ok := b.surfaces[title]
	if !ok {
		return -1, fmt.Errorf("query %q: %w", title, display.ErrSurfaceUnavailable)
	}
	if s.destroyed {
		return -1, nil
	}
	return 0, nil
}

func (b *Backend) WaitKey(time.Duration) int {
	b.polls++
	if len(b.keys) == 0 {
		return display.NoKey
	}
	k := b.keys[0]
	b.keys = b.keys[1:]
	return k
}

func (b *Backend) NativeOrder() frame.Order { return b.order }

func (b *Backend) Close() error {
	for _, s := range b.surfaces {
		s.destroyed = true
	}
	return nil
}

// Destroy closes a surface the way a user clicking its close button would.
func (b *Backend) Destroy(title string) {
	if s, ok := b.surfaces[title]; ok {
		s.destroyed = true
	}
}

// PressKey queues a key for the next WaitKey.
func (b *Backend) PressKey(key int) { b.keys = append(b.keys, key) }

func (b *Backend) Surface(title string) (*Surface, bool) {
	s, ok := b.surfaces[title]
	return s, ok
}

// Polls is the number of WaitKey calls.
func (b *Backend) Polls() int { return b.polls }

// Queries is the number of Property calls.
func (b *Backend) Queries() int { return b.queries }
