package frame

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Adapt turns a video frame into a displayable buffer.
//
// 3-channel frames are aliased, not copied: the returned buffer must not be
// used after the frame's memory is released. Depth frames in Z16 are
// colorized into an owned buffer.
func Adapt(f Frame) (*PixelBuffer, error) {
	vf, err := AsVideo(f)
	if err != nil {
		return nil, err
	}
	switch vf.Format() {
	case FormatRGB8:
		return View(vf.Data(), vf.Width(), vf.Height(), vf.Stride(), RGB)
	case FormatBGR8:
		return View(vf.Data(), vf.Width(), vf.Height(), vf.Stride(), BGR)
	case FormatZ16:
		return Colorize(vf)
	}
	return nil, fmt.Errorf("unsupported video format %v", vf.Format())
}

// Colorize maps a Z16 depth frame onto a jet color scale.
// The nearest non-zero depth is blue, the farthest red; zero depth
// (no data) stays black.
func Colorize(vf VideoFrame) (*PixelBuffer, error) {
	if vf.Format() != FormatZ16 {
		return nil, fmt.Errorf("colorize %v frame", vf.Format())
	}
	w, h, stride := vf.Width(), vf.Height(), vf.Stride()
	data := vf.Data()
	if h > 0 && len(data) < stride*(h-1)+w*2 {
		return nil, fmt.Errorf("depth buffer of %d bytes is short for %dx%d", len(data), w, h)
	}

	lo, hi := uint16(math.MaxUint16), uint16(0)
	for y := 0; y < h; y++ {
		row := data[y*stride:]
		for x := 0; x < w; x++ {
			d := binary.LittleEndian.Uint16(row[x*2:])
			if d == 0 {
				continue
			}
			if d < lo {
				lo = d
			}
			if d > hi {
				hi = d
			}
		}
	}

	out := NewPixelBuffer(w, h, RGB)
	if hi == 0 {
		return out, nil
	}
	span := float64(hi - lo)
	for y := 0; y < h; y++ {
		row := data[y*stride:]
		i := y * out.Stride
		for x := 0; x < w; x++ {
			d := binary.LittleEndian.Uint16(row[x*2:])
			if d != 0 {
				t := 0.0
				if span > 0 {
					t = float64(d-lo) / span
				}
				out.Pix[i], out.Pix[i+1], out.Pix[i+2] = jet(t)
			}
			i += channels
		}
	}
	return out, nil
}

func jet(t float64) (r, g, b uint8) {
	return unit(1.5 - math.Abs(4*t-3)), unit(1.5 - math.Abs(4*t-2)), unit(1.5 - math.Abs(4*t-1))
}

func unit(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 0xff
	}
	return uint8(v*0xff + 0.5)
}
