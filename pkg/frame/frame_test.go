package frame

import (
	"encoding/binary"
	"errors"
	"image/color"
	"reflect"
	"testing"
)

type motion struct{}

func (motion) Kind() Kind   { return KindMotion }
func (motion) Data() []byte { return nil }

// videoKindOnly claims to be a video frame but has no video facet.
type videoKindOnly struct{}

func (videoKindOnly) Kind() Kind   { return KindVideo }
func (videoKindOnly) Data() []byte { return nil }

func TestAsVideo(t *testing.T) {
	tests := []struct {
		name    string
		f       Frame
		wantErr bool
	}{
		{name: "video", f: NewVideo(2, 2, FormatRGB8)},
		{name: "nil", f: nil, wantErr: true},
		{name: "motion", f: motion{}, wantErr: true},
		{name: "no facet", f: videoKindOnly{}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := AsVideo(tt.f)
			if tt.wantErr != (err != nil) {
				t.Fatalf("AsVideo() err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrInvalidFrameKind) {
				t.Errorf("AsVideo() err = %v, want ErrInvalidFrameKind", err)
			}
		})
	}
}

func TestAdaptAliases(t *testing.T) {
	v := NewVideo(4, 3, FormatRGB8)
	buf, err := Adapt(v)
	if err != nil {
		t.Fatal(err)
	}
	if buf.Width() != 4 || buf.Height() != 3 {
		t.Fatalf("size = %vx%v, want 4x3", buf.Width(), buf.Height())
	}
	buf.Set(1, 1, color.RGBA{R: 9, G: 8, B: 7, A: 255})
	i := 1*v.Stride() + 1*3
	if got := v.Pix[i : i+3]; !reflect.DeepEqual(got, []byte{9, 8, 7}) {
		t.Errorf("frame memory = %v, want the write through the view", got)
	}
}

func TestAdaptBGR(t *testing.T) {
	v := NewVideo(1, 1, FormatBGR8)
	copy(v.Pix, []byte{1, 2, 3})
	buf, err := Adapt(v)
	if err != nil {
		t.Fatal(err)
	}
	if got := buf.RGBAAt(0, 0); got != (color.RGBA{R: 3, G: 2, B: 1, A: 255}) {
		t.Errorf("At() = %v", got)
	}
}

func TestAdaptInvalidKind(t *testing.T) {
	if _, err := Adapt(motion{}); !errors.Is(err, ErrInvalidFrameKind) {
		t.Errorf("Adapt() err = %v, want ErrInvalidFrameKind", err)
	}
}

func TestViewShortBuffer(t *testing.T) {
	if _, err := View(make([]byte, 5), 2, 1, 0, RGB); err == nil {
		t.Error("View() accepted a short buffer")
	}
	if _, err := View(make([]byte, 12), 2, 2, 5, RGB); err == nil {
		t.Error("View() accepted a stride below the row size")
	}
	if _, err := View(nil, 0, 0, 0, RGB); err != nil {
		t.Errorf("View() of empty buffer: %v", err)
	}
}

func TestConvert(t *testing.T) {
	src, _ := View([]byte{1, 2, 3, 4, 5, 6, 0, 0, 7, 8, 9, 10, 11, 12, 0, 0}, 2, 2, 8, RGB)
	got := src.Convert(BGR)
	want := []byte{3, 2, 1, 6, 5, 4, 9, 8, 7, 12, 11, 10}
	if !reflect.DeepEqual(got.Pix, want) {
		t.Errorf("Convert() = %v, want %v", got.Pix, want)
	}
	if got.Order != BGR {
		t.Errorf("Convert() order = %v", got.Order)
	}
	if src.RGBAAt(1, 1) != got.RGBAAt(1, 1) {
		t.Errorf("colors differ after conversion: %v != %v", src.RGBAAt(1, 1), got.RGBAAt(1, 1))
	}
	if same := src.Convert(RGB); !reflect.DeepEqual(same.Pix, src.Bytes()) {
		t.Errorf("Convert() to the same order = %v, want %v", same.Pix, src.Bytes())
	}
}

func TestFillClips(t *testing.T) {
	b := NewPixelBuffer(3, 3, BGR)
	b.Fill(b.Extent().Add(b.Extent().Max.Div(2)), color.White)
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			want := color.RGBA{A: 255}
			if x >= 1 && y >= 1 {
				want = white
			}
			if got := b.RGBAAt(x, y); got != want {
				t.Errorf("(%v,%v) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestColorize(t *testing.T) {
	v := NewVideo(3, 1, FormatZ16)
	binary.LittleEndian.PutUint16(v.Pix[0:], 0)
	binary.LittleEndian.PutUint16(v.Pix[2:], 500)
	binary.LittleEndian.PutUint16(v.Pix[4:], 4000)

	buf, err := Adapt(v)
	if err != nil {
		t.Fatal(err)
	}
	if got := buf.RGBAAt(0, 0); got != (color.RGBA{A: 255}) {
		t.Errorf("no-data pixel = %v, want black", got)
	}
	if near := buf.RGBAAt(1, 0); near.B <= near.R {
		t.Errorf("near pixel = %v, want blue dominant", near)
	}
	if far := buf.RGBAAt(2, 0); far.R <= far.B {
		t.Errorf("far pixel = %v, want red dominant", far)
	}
	if &buf.Pix[0] == &v.Pix[0] {
		t.Error("colorized buffer aliases depth memory")
	}
}

func BenchmarkConvert(b *testing.B) {
	src := NewPixelBuffer(1280, 720, RGB)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = src.Convert(BGR)
	}
	b.ReportAllocs()
}
