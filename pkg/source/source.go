// Package source makes synthetic camera ticks: a Z16 depth frame, an RGB
// color frame with SMPTE bars and the objects a detector would have found.
package source

import (
	"encoding/binary"
	"image"

	"github.com/sighpp/sightview/pkg/classification"
	"github.com/sighpp/sightview/pkg/frame"
)

// DepthUnit is the length of one Z16 step in meters.
const DepthUnit = 0.001

var names = []string{"person", "chair", "bottle", "dog", "cup", "laptop"}

var bars = [7][3]uint8{
	{192, 192, 192}, // gray
	{192, 192, 0},   // yellow
	{0, 192, 192},   // cyan
	{0, 192, 0},     // green
	{192, 0, 192},   // magenta
	{192, 0, 0},     // red
	{0, 0, 192},     // blue
}

// Tick is one aligned depth and color capture.
type Tick struct {
	Depth  *frame.Video
	Color  *frame.PixelBuffer
	Groups []classification.Prioritised
}

type object struct {
	name   string
	size   image.Point
	pos    image.Point
	vel    image.Point
	meters float64
}

// Synthetic moves a fixed set of boxes across a depth ramp. Every call to
// Next advances the scene by one frame; the scene only depends on the
// frame number, so two sources with the same settings agree.
type Synthetic struct {
	w, h    int
	objects []object
	n       uint64
}

func NewSynthetic(w, h, objects int) *Synthetic {
	s := &Synthetic{w: w, h: h}
	for i := 0; i < objects; i++ {
		size := image.Pt(max(w/(5+i), 8), max(h/(4+i), 8))
		s.objects = append(s.objects, object{
			name:   names[i%len(names)],
			size:   size,
			pos:    image.Pt((w/(objects+1))*(i+1)-size.X/2, h/3+i*h/(4*objects+4)),
			vel:    image.Pt(2+i, 1+i%3),
			meters: 0.8 + 0.6*float64(i),
		})
	}
	return s
}

// FrameN is the number of ticks made so far.
func (s *Synthetic) FrameN() uint64 { return s.n }

// Next renders the scene and moves the objects one step.
// Boxes may leave the frame for a while before they bounce back.
func (s *Synthetic) Next() Tick {
	t := Tick{
		Depth: frame.NewVideo(s.w, s.h, frame.FormatZ16),
		Color: frame.NewPixelBuffer(s.w, s.h, frame.RGB),
	}
	t.Depth.FrameN = s.n
	fillBars(t.Color)
	s.fillFloor(t.Depth)

	groups := map[int]int{}
	for i := range s.objects {
		o := &s.objects[i]
		box := image.Rectangle{Min: o.pos, Max: o.pos.Add(o.size)}
		paintDepth(t.Depth, box, uint16(o.meters/DepthUnit+0.5))

		r := classification.Result{
			Name:       o.name,
			Distance:   o.meters,
			BottomLeft: classification.Point{X: box.Min.X, Y: box.Min.Y},
			TopRight:   classification.Point{X: box.Max.X, Y: box.Max.Y},
		}
		if c := box.Min.Add(box.Max).Div(2); c.In(bounds(t.Depth)) {
			r.Distance = DepthAt(t.Depth, c.X, c.Y)
		}
		prio := i % 2
		g, ok := groups[prio]
		if !ok {
			g = len(t.Groups)
			groups[prio] = g
			t.Groups = append(t.Groups, classification.Prioritised{Priority: prio})
		}
		t.Groups[g].Objects = append(t.Groups[g].Objects, r)

		s.step(o)
	}
	s.n++
	return t
}

func (s *Synthetic) step(o *object) {
	o.pos = o.pos.Add(o.vel)
	if o.pos.X < -o.size.X/2 || o.pos.X > s.w-o.size.X/2 {
		o.vel.X = -o.vel.X
	}
	if o.pos.Y < -o.size.Y/2 || o.pos.Y > s.h-o.size.Y/2 {
		o.vel.Y = -o.vel.Y
	}
}

// fillFloor ramps from 5m at the top row to 1m at the bottom row and
// leaves the left column empty, as a stereo camera would.
func (s *Synthetic) fillFloor(v *frame.Video) {
	for y := 0; y < v.H; y++ {
		d := uint16((5-4*float64(y)/float64(max(v.H-1, 1)))/DepthUnit + 0.5)
		row := v.Pix[y*v.Pitch:]
		for x := 1; x < v.W; x++ {
			binary.LittleEndian.PutUint16(row[x*2:], d)
		}
	}
}

func paintDepth(v *frame.Video, r image.Rectangle, d uint16) {
	r = r.Intersect(bounds(v))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := v.Pix[y*v.Pitch:]
		for x := r.Min.X; x < r.Max.X; x++ {
			binary.LittleEndian.PutUint16(row[x*2:], d)
		}
	}
}

// DepthAt reads the distance in meters at a Z16 pixel.
func DepthAt(v *frame.Video, x, y int) float64 {
	return float64(binary.LittleEndian.Uint16(v.Pix[y*v.Pitch+x*2:])) * DepthUnit
}

func fillBars(b *frame.PixelBuffer) {
	w := max(b.Width()/len(bars), 1)
	for y := 0; y < b.Height(); y++ {
		i := y * b.Stride
		for x := 0; x < b.Width(); x++ {
			c := bars[min(x/w, len(bars)-1)]
			b.Pix[i], b.Pix[i+1], b.Pix[i+2] = c[0], c[1], c[2]
			i += 3
		}
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func bounds(v *frame.Video) image.Rectangle { return image.Rect(0, 0, v.W, v.H) }
