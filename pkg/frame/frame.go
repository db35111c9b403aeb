package frame

import (
	"errors"
	"fmt"
)

// ErrInvalidFrameKind is returned when a frame cannot be viewed as a video frame.
var ErrInvalidFrameKind = errors.New("invalid frame kind")

type Kind uint8

const (
	KindUnknown Kind = iota
	KindVideo
	KindMotion
	KindPose
)

func (k Kind) String() string {
	switch k {
	case KindVideo:
		return "video"
	case KindMotion:
		return "motion"
	case KindPose:
		return "pose"
	}
	return "unknown"
}

// Format describes the pixel layout of a video frame.
type Format uint8

const (
	FormatRGB8 Format = iota // 3 bytes per pixel, R first
	FormatBGR8               // 3 bytes per pixel, B first
	FormatZ16                // 16-bit little-endian depth units
)

func (f Format) BytesPerPixel() int {
	if f == FormatZ16 {
		return 2
	}
	return 3
}

func (f Format) String() string {
	switch f {
	case FormatRGB8:
		return "rgb8"
	case FormatBGR8:
		return "bgr8"
	case FormatZ16:
		return "z16"
	}
	return fmt.Sprintf("format(%d)", uint8(f))
}

// Frame is one captured sensor sample.
// The pixel memory behind Data belongs to the producer.
type Frame interface {
	Kind() Kind
	Data() []byte
}

// VideoFrame is the rectangular facet of a frame.
type VideoFrame interface {
	Frame
	Width() int
	Height() int
	// Stride is the number of bytes between two rows.
	Stride() int
	Format() Format
}

// AsVideo returns the video facet of f.
func AsVideo(f Frame) (VideoFrame, error) {
	if f == nil {
		return nil, fmt.Errorf("nil frame: %w", ErrInvalidFrameKind)
	}
	if f.Kind() != KindVideo {
		return nil, fmt.Errorf("%v frame: %w", f.Kind(), ErrInvalidFrameKind)
	}
	vf, ok := f.(VideoFrame)
	if !ok {
		return nil, fmt.Errorf("no video facet: %w", ErrInvalidFrameKind)
	}
	return vf, nil
}

// Video is a plain in-memory video frame.
type Video struct {
	W, H   int
	Pitch  int
	Fmt    Format
	Pix    []byte
	FrameN uint64
}

// NewVideo allocates a tightly packed video frame.
func NewVideo(w, h int, format Format) *Video {
	pitch := w * format.BytesPerPixel()
	return &Video{W: w, H: h, Pitch: pitch, Fmt: format, Pix: make([]byte, pitch*h)}
}

func (v *Video) Kind() Kind     { return KindVideo }
func (v *Video) Data() []byte   { return v.Pix }
func (v *Video) Width() int     { return v.W }
func (v *Video) Height() int    { return v.H }
func (v *Video) Format() Format { return v.Fmt }

func (v *Video) Stride() int {
	if v.Pitch == 0 {
		return v.W * v.Fmt.BytesPerPixel()
	}
	return v.Pitch
}
