package frame

import (
	"fmt"
	"image"
	"image/color"
)

// Order is the byte order of the three channels of a pixel.
type Order uint8

const (
	RGB Order = iota
	BGR
)

func (o Order) String() string {
	if o == BGR {
		return "bgr"
	}
	return "rgb"
}

const channels = 3

// PixelBuffer is an 8-bit 3-channel image.
//
// A buffer made with View aliases memory it does not own: it is valid only
// while the memory it was made from is alive, and writes go straight into
// that memory. A buffer made with NewPixelBuffer owns its pixels.
// PixelBuffer implements draw.Image, so it can be drawn on with
// image/draw and x/image/font.
type PixelBuffer struct {
	Pix    []uint8
	Stride int
	Rect   image.Rectangle
	Order  Order
}

// NewPixelBuffer allocates an owned w×h buffer.
func NewPixelBuffer(w, h int, order Order) *PixelBuffer {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &PixelBuffer{
		Pix:    make([]uint8, w*h*channels),
		Stride: w * channels,
		Rect:   image.Rect(0, 0, w, h),
		Order:  order,
	}
}

// View wraps pix as a w×h buffer without copying.
// A zero stride means tightly packed rows.
func View(pix []uint8, w, h, stride int, order Order) (*PixelBuffer, error) {
	if w < 0 || h < 0 {
		return nil, fmt.Errorf("negative size %dx%d", w, h)
	}
	if stride == 0 {
		stride = w * channels
	}
	if stride < w*channels {
		return nil, fmt.Errorf("stride %d is less than row size %d", stride, w*channels)
	}
	if h > 0 {
		if need := stride*(h-1) + w*channels; len(pix) < need {
			return nil, fmt.Errorf("buffer of %d bytes is short of %d for %dx%d", len(pix), need, w, h)
		}
	}
	return &PixelBuffer{Pix: pix, Stride: stride, Rect: image.Rect(0, 0, w, h), Order: order}, nil
}

func (b *PixelBuffer) Width() int  { return b.Rect.Dx() }
func (b *PixelBuffer) Height() int { return b.Rect.Dy() }

// Extent is the rectangle [0, w) × [0, h) of the buffer.
func (b *PixelBuffer) Extent() image.Rectangle { return image.Rect(0, 0, b.Width(), b.Height()) }

func (b *PixelBuffer) ColorModel() color.Model { return color.RGBAModel }
func (b *PixelBuffer) Bounds() image.Rectangle { return b.Rect }

func (b *PixelBuffer) PixOffset(x, y int) int {
	return (y-b.Rect.Min.Y)*b.Stride + (x-b.Rect.Min.X)*channels
}

func (b *PixelBuffer) At(x, y int) color.Color { return b.RGBAAt(x, y) }

func (b *PixelBuffer) RGBAAt(x, y int) color.RGBA {
	if !(image.Point{X: x, Y: y}.In(b.Rect)) {
		return color.RGBA{}
	}
	i := b.PixOffset(x, y)
	p := b.Pix[i : i+channels : i+channels]
	if b.Order == BGR {
		return color.RGBA{R: p[2], G: p[1], B: p[0], A: 0xff}
	}
	return color.RGBA{R: p[0], G: p[1], B: p[2], A: 0xff}
}

// Set writes c as an opaque pixel.
func (b *PixelBuffer) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}.In(b.Rect)) {
		return
	}
	cc := color.RGBAModel.Convert(c).(color.RGBA)
	b.set(b.PixOffset(x, y), cc)
}

func (b *PixelBuffer) set(i int, c color.RGBA) {
	p := b.Pix[i : i+channels : i+channels]
	if b.Order == BGR {
		p[0], p[1], p[2] = c.B, c.G, c.R
		return
	}
	p[0], p[1], p[2] = c.R, c.G, c.B
}

// Fill paints r, clipped to the buffer, with c.
func (b *PixelBuffer) Fill(r image.Rectangle, c color.Color) {
	r = r.Intersect(b.Rect)
	if r.Empty() {
		return
	}
	cc := color.RGBAModel.Convert(c).(color.RGBA)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := b.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			b.set(i, cc)
			i += channels
		}
	}
}

// Clone returns an owned copy of b with tightly packed rows.
func (b *PixelBuffer) Clone() *PixelBuffer { return b.Convert(b.Order) }

// Convert returns an owned copy of b with its channels in the given order.
// Converting RGB to BGR (or back) swaps the first and third channel of
// every pixel in one pass over the whole buffer.
func (b *PixelBuffer) Convert(order Order) *PixelBuffer {
	w, h := b.Width(), b.Height()
	out := NewPixelBuffer(w, h, order)
	swap := b.Order != order
	row := w * channels
	for y := 0; y < h; y++ {
		src := b.Pix[y*b.Stride : y*b.Stride+row]
		dst := out.Pix[y*out.Stride : y*out.Stride+row]
		if !swap {
			copy(dst, src)
			continue
		}
		for i := 0; i < row; i += channels {
			dst[i], dst[i+1], dst[i+2] = src[i+2], src[i+1], src[i]
		}
	}
	return out
}

// Bytes returns the pixels as one tightly packed slice.
// The slice aliases b when its rows are already packed.
func (b *PixelBuffer) Bytes() []uint8 {
	row := b.Width() * channels
	n := row * b.Height()
	if b.Stride == row {
		return b.Pix[:n]
	}
	out := make([]uint8, n)
	for y := 0; y < b.Height(); y++ {
		copy(out[y*row:(y+1)*row], b.Pix[y*b.Stride:y*b.Stride+row])
	}
	return out
}
