package overlay

import (
	"image"
	"image/color"
	"reflect"
	"testing"

	"github.com/sighpp/sightview/pkg/classification"
	"github.com/sighpp/sightview/pkg/frame"
)

func TestClamp(t *testing.T) {
	bounds := image.Rect(0, 0, 640, 480)
	tests := []struct {
		name string
		r    image.Rectangle
		want image.Rectangle
	}{
		{name: "inside", r: image.Rect(10, 20, 30, 40), want: image.Rect(10, 20, 30, 40)},
		{name: "overhang", r: image.Rect(-10, 400, 700, 500), want: image.Rect(0, 400, 640, 480)},
		{name: "outside", r: image.Rect(700, 500, 800, 600), want: image.Rectangle{}},
		{name: "touching edge", r: image.Rect(640, 0, 700, 10), want: image.Rectangle{}},
		{
			name: "negative extent",
			r:    image.Rectangle{Min: image.Pt(50, 50), Max: image.Pt(10, 10)},
			want: image.Rectangle{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.r, bounds); got != tt.want {
				t.Errorf("Clamp() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClampContained(t *testing.T) {
	bounds := image.Rect(0, 0, 4, 3)
	for x0 := -2; x0 <= 6; x0++ {
		for y0 := -2; y0 <= 5; y0++ {
			for x1 := -2; x1 <= 6; x1++ {
				for y1 := -2; y1 <= 5; y1++ {
					r := image.Rectangle{Min: image.Pt(x0, y0), Max: image.Pt(x1, y1)}
					got := Clamp(r, bounds)
					if !got.In(bounds) {
						t.Fatalf("Clamp(%v) = %v is not inside %v", r, got, bounds)
					}
					if !r.Empty() && r.In(bounds) && got != r {
						t.Fatalf("Clamp(%v) = %v, want it unchanged", r, got)
					}
					if e := Clamp(r, image.Rectangle{}); !e.Empty() {
						t.Fatalf("Clamp(%v) against 0x0 = %v, want empty", r, e)
					}
				}
			}
		}
	}
}

func TestCenter(t *testing.T) {
	tests := []struct {
		r    image.Rectangle
		want image.Point
	}{
		{r: image.Rect(0, 0, 10, 20), want: image.Pt(5, 10)},
		{r: image.Rect(0, 0, 5, 7), want: image.Pt(2, 4)},
		{r: image.Rectangle{}, want: image.Point{}},
	}
	for _, tt := range tests {
		if got := Center(tt.r); got != tt.want {
			t.Errorf("Center(%v) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestFormatLabel(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		want     string
	}{
		{name: "person", distance: 1.23456, want: "person 1.2 meters away"},
		{name: "person", distance: 10.0, want: "person 10 meters away"},
		{name: "chair", distance: 0.456, want: "chair 0.46 meters away"},
		{name: "car", distance: 0, want: "car 0 meters away"},
	}
	for _, tt := range tests {
		if got := FormatLabel(tt.name, tt.distance); got != tt.want {
			t.Errorf("FormatLabel(%q, %v) = %q, want %q", tt.name, tt.distance, got, tt.want)
		}
	}
}

func TestMeasure(t *testing.T) {
	size, baseline := DefaultFace().Measure("person 1.2 meters away")
	if want := (image.Point{X: 22 * 7, Y: 11}); size != want {
		t.Errorf("Measure() size = %v, want %v", size, want)
	}
	if baseline != 2 {
		t.Errorf("Measure() baseline = %v, want 2", baseline)
	}
}

func TestComposeEmpty(t *testing.T) {
	dst := testPattern(64, 48)
	want := dst.Clone()
	st := NewComposer(DefaultFace()).Compose(dst, dst.Extent(), nil)
	if st != (Stats{}) {
		t.Errorf("Compose() stats = %+v", st)
	}
	if !reflect.DeepEqual(dst.Pix, want.Pix) {
		t.Error("Compose() without results changed the buffer")
	}
}

func TestComposeBox(t *testing.T) {
	dst := frame.NewPixelBuffer(320, 240, frame.RGB)
	obj := classification.Result{Name: "cup", Distance: 2, BottomLeft: classification.Point{X: 100, Y: 100}, TopRight: classification.Point{X: 200, Y: 220}}

	box := NewComposer(DefaultFace()).Draw(dst, dst.Extent(), obj)
	if box != image.Rect(100, 100, 200, 220) {
		t.Fatalf("Draw() box = %v", box)
	}
	for _, p := range []image.Point{{100, 100}, {199, 100}, {100, 219}, {199, 219}, {150, 219}} {
		if got := dst.RGBAAt(p.X, p.Y); got != BoxColor {
			t.Errorf("outline pixel %v = %v, want %v", p, got, BoxColor)
		}
	}
	if got := dst.RGBAAt(101, 218); got != (color.RGBA{A: 0xff}) {
		t.Errorf("inner pixel = %v, want untouched", got)
	}
	if got := dst.RGBAAt(150, 220); got != (color.RGBA{A: 0xff}) {
		t.Errorf("pixel past the box = %v, want untouched", got)
	}

	// the label background spans [anchor.y-ascent, anchor.y+descent) around the center
	size, _ := DefaultFace().Measure(FormatLabel("cup", 2))
	left := 150 - size.X/2
	if got := dst.RGBAAt(left, 160-11); got != LabelBackground {
		t.Errorf("label corner = %v, want %v", got, LabelBackground)
	}
	if got := dst.RGBAAt(left, 160-12); got == LabelBackground {
		t.Errorf("pixel above label = %v, want no background", got)
	}
}

func TestComposeClampsToExtent(t *testing.T) {
	dst := frame.NewPixelBuffer(320, 240, frame.RGB)
	extent := image.Rect(0, 0, 160, 120)
	obj := classification.Result{Name: "cat", BottomLeft: classification.Point{X: 100, Y: 100}, TopRight: classification.Point{X: 300, Y: 200}}

	box := NewComposer(DefaultFace()).Draw(dst, extent, obj)
	if box != image.Rect(100, 100, 160, 120) {
		t.Errorf("Draw() box = %v, want it clamped to %v", box, extent)
	}
	if got := dst.RGBAAt(299, 150); got == BoxColor {
		t.Error("outline drawn past the extent")
	}
}

func TestComposeClippedStillLabels(t *testing.T) {
	dst := frame.NewPixelBuffer(320, 240, frame.RGB)
	groups := []classification.Prioritised{{Objects: []classification.Result{
		{Name: "a", Distance: 1, BottomLeft: classification.Point{X: 400, Y: 400}, TopRight: classification.Point{X: 500, Y: 500}},
	}}}
	st := NewComposer(DefaultFace()).Compose(dst, dst.Extent(), groups)
	if st != (Stats{Objects: 1, Clipped: 1}) {
		t.Errorf("Compose() stats = %+v", st)
	}
	touched := 0
	for y := 0; y < 2; y++ {
		for x := 0; x < 60; x++ {
			if dst.RGBAAt(x, y) != (color.RGBA{A: 0xff}) {
				touched++
			}
		}
	}
	if touched == 0 {
		t.Error("no label drawn at the origin for a clipped box")
	}
}

func TestComposeOrder(t *testing.T) {
	first := classification.Result{Name: "a", Distance: 1,
		BottomLeft: classification.Point{X: 0, Y: 0}, TopRight: classification.Point{X: 200, Y: 40}}
	second := classification.Result{Name: "b", Distance: 1,
		BottomLeft: classification.Point{X: 50, Y: 15}, TopRight: classification.Point{X: 150, Y: 100}}
	// (60,15) lies on the top edge of second and inside the label of first
	p := image.Pt(60, 15)

	tests := []struct {
		name   string
		groups []classification.Prioritised
		green  bool
	}{
		{
			name:   "second on top",
			groups: []classification.Prioritised{{Objects: []classification.Result{first, second}}},
			green:  true,
		},
		{
			name:   "first on top",
			groups: []classification.Prioritised{{Objects: []classification.Result{second, first}}},
			green:  false,
		},
		{
			name: "across groups",
			groups: []classification.Prioritised{
				{Priority: 1, Objects: []classification.Result{first}},
				{Priority: 2, Objects: []classification.Result{second}},
			},
			green: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := frame.NewPixelBuffer(320, 240, frame.RGB)
			NewComposer(DefaultFace()).Compose(dst, dst.Extent(), tt.groups)
			if got := dst.RGBAAt(p.X, p.Y) == BoxColor; got != tt.green {
				t.Errorf("pixel %v = %v, green %v, want %v", p, dst.RGBAAt(p.X, p.Y), got, tt.green)
			}
		})
	}
}

func testPattern(w, h int) *frame.PixelBuffer {
	b := frame.NewPixelBuffer(w, h, frame.RGB)
	for i := range b.Pix {
		b.Pix[i] = uint8(i * 7)
	}
	return b
}

func BenchmarkCompose(b *testing.B) {
	dst := frame.NewPixelBuffer(640, 480, frame.RGB)
	groups := []classification.Prioritised{{Objects: []classification.Result{
		{Name: "person", Distance: 1.5, BottomLeft: classification.Point{X: 10, Y: 10}, TopRight: classification.Point{X: 200, Y: 300}},
		{Name: "chair", Distance: 3.25, BottomLeft: classification.Point{X: 300, Y: 200}, TopRight: classification.Point{X: 500, Y: 460}},
	}}}
	c := NewComposer(DefaultFace())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Compose(dst, dst.Extent(), groups)
	}
	b.ReportAllocs()
}
