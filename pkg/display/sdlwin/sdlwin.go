// Package sdlwin shows surfaces as SDL2 windows.
//
// Every SDL call goes through thread.MainMaybe, so the program must be
// started with thread.MainWrapMaybe.
package sdlwin

import (
	"fmt"
	"time"

	"github.com/sighpp/sightview/pkg/display"
	"github.com/sighpp/sightview/pkg/frame"
	"github.com/sighpp/sightview/pkg/logger"
	"github.com/sighpp/sightview/pkg/thread"

	"github.com/veandco/go-sdl2/sdl"
)

const (
	defaultW = 640
	defaultH = 480
)

type surface struct {
	title    string
	id       uint32
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	// texture geometry, the texture is remade when a frame differs
	tw, th int32
	format uint32
	sized  bool
	closed bool
}

type Backend struct {
	surfaces map[string]*surface
	byID     map[uint32]*surface
	log      *logger.Logger
}

func New(log *logger.Logger) (*Backend, error) {
	if err := thread.MainErrMaybe(func() error { return sdl.Init(sdl.INIT_VIDEO) }); err != nil {
		return nil, fmt.Errorf("sdl: %w", err)
	}
	return &Backend{
		surfaces: make(map[string]*surface),
		byID:     make(map[uint32]*surface),
		log:      log,
	}, nil
}

func (b *Backend) Create(title string) error {
	if _, ok := b.surfaces[title]; ok {
		return nil
	}
	s := &surface{title: title}
	err := thread.MainErrMaybe(func() (err error) {
		s.window, err = sdl.CreateWindow(title,
			int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED),
			defaultW, defaultH,
			uint32(sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE))
		if err != nil {
			return fmt.Errorf("window: %w", err)
		}
		if s.id, err = s.window.GetID(); err != nil {
			err1 := s.window.Destroy()
			return fmt.Errorf("window id: %v, destroy err: %v", err, err1)
		}
		s.renderer, err = sdl.CreateRenderer(s.window, -1, uint32(sdl.RENDERER_ACCELERATED))
		if err != nil {
			err1 := s.window.Destroy()
			return fmt.Errorf("renderer: %v, destroy err: %v", err, err1)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("create %q: %v: %w", title, err, display.ErrSurfaceUnavailable)
	}
	b.surfaces[title] = s
	b.byID[s.id] = s
	b.log.Debug().Str("window", title).Uint32("id", s.id).Msg("sdl window opened")
	return nil
}

func pixelFormat(o frame.Order) uint32 {
	if o == frame.BGR {
		return uint32(sdl.PIXELFORMAT_BGR24)
	}
	return uint32(sdl.PIXELFORMAT_RGB24)
}

func (b *Backend) Show(title string, buf *frame.PixelBuffer) error {
	s, ok := b.surfaces[title]
	if !ok || s.closed {
		return fmt.Errorf("show %q: %w", title, display.ErrSurfaceUnavailable)
	}
	w, h := int32(buf.Width()), int32(buf.Height())
	if w == 0 || h == 0 {
		return nil
	}
	err := thread.MainErrMaybe(func() error {
		if err := s.fit(w, h, pixelFormat(buf.Order)); err != nil {
			return err
		}
		if err := s.texture.Update(nil, buf.Bytes(), buf.Width()*3); err != nil {
			return fmt.Errorf("texture: %w", err)
		}
		if err := s.renderer.Clear(); err != nil {
			return err
		}
		if err := s.renderer.Copy(s.texture, nil, nil); err != nil {
			return err
		}
		s.renderer.Present()
		return nil
	})
	if err != nil {
		return fmt.Errorf("show %q: %v: %w", title, err, display.ErrSurfaceUnavailable)
	}
	return nil
}

// fit remakes the streaming texture for a frame of another size or format.
// The window takes the size of the first frame and is user-resizable after.
func (s *surface) fit(w, h int32, format uint32) (err error) {
	if s.texture != nil && s.tw == w && s.th == h && s.format == format {
		return nil
	}
	if s.texture != nil {
		_ = s.texture.Destroy()
	}
	s.texture, err = s.renderer.CreateTexture(format, int(sdl.TEXTUREACCESS_STREAMING), w, h)
	if err != nil {
		s.texture = nil
		return fmt.Errorf("texture: %w", err)
	}
	s.tw, s.th, s.format = w, h, format
	if !s.sized {
		s.window.SetSize(w, h)
		s.sized = true
	}
	return nil
}

// Property is 0 for a live window and -1 once it was closed.
func (b *Backend) Property(title string) (float64, error) {
	s, ok := b.surfaces[title]
	if !ok {
		return -1, fmt.Errorf("query %q: %w", title, display.ErrSurfaceUnavailable)
	}
	if s.closed {
		return -1, nil
	}
	var err error
	thread.MainMaybe(func() { _, err = sdl.GetWindowFromID(s.id) })
	if err != nil {
		return -1, nil
	}
	return 0, nil
}

// WaitKey waits up to timeout for the first event, then drains the queue.
// Close requests destroy the window they belong to.
func (b *Backend) WaitKey(timeout time.Duration) int {
	key := display.NoKey
	thread.MainMaybe(func() {
		ev := sdl.WaitEventTimeout(int(timeout / time.Millisecond))
		for ; ev != nil; ev = sdl.PollEvent() {
			switch ev := ev.(type) {
			case *sdl.QuitEvent:
				for _, s := range b.surfaces {
					b.destroy(s)
				}
			case *sdl.WindowEvent:
				if ev.Event == sdl.WINDOWEVENT_CLOSE {
					if s, ok := b.byID[ev.WindowID]; ok {
						b.destroy(s)
					}
				}
			case *sdl.KeyboardEvent:
				if ev.Type == sdl.KEYDOWN && ev.Repeat == 0 && key == display.NoKey {
					key = int(ev.Keysym.Sym)
				}
			}
		}
	})
	return key
}

// destroy must run on the main thread.
func (b *Backend) destroy(s *surface) {
	if s.closed {
		return
	}
	s.closed = true
	if s.texture != nil {
		_ = s.texture.Destroy()
	}
	_ = s.renderer.Destroy()
	if err := s.window.Destroy(); err != nil {
		b.log.Warn().Err(err).Str("window", s.title).Msg("sdl window destroy")
	}
	b.log.Debug().Str("window", s.title).Msg("sdl window closed")
}

func (b *Backend) NativeOrder() frame.Order { return frame.RGB }

func (b *Backend) Close() error {
	thread.MainMaybe(func() {
		for _, s := range b.surfaces {
			b.destroy(s)
		}
		sdl.Quit()
	})
	return nil
}
