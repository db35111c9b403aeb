// Package overlay draws classification boxes and labels onto color frames.
package overlay

import (
	"image"
	"image/color"

	"github.com/sighpp/sightview/pkg/classification"
	"github.com/sighpp/sightview/pkg/frame"
)

var (
	BoxColor        = color.RGBA{G: 0xff, A: 0xff}
	LabelBackground = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	LabelColor      = color.RGBA{A: 0xff}
)

// Stats counts what one Compose call drew.
type Stats struct {
	Objects int
	// Clipped counts objects whose box fell outside the extent.
	// Their labels are still drawn.
	Clipped int
}

type Composer struct {
	face Face
}

func NewComposer(face Face) *Composer { return &Composer{face: face} }

// Compose draws every result of every group, in order, onto dst.
// Boxes are clamped to extent, the area shared with the depth sensor.
// Later results are drawn over earlier ones.
func (c *Composer) Compose(dst *frame.PixelBuffer, extent image.Rectangle, groups []classification.Prioritised) (st Stats) {
	for _, g := range groups {
		for _, obj := range g.Objects {
			if c.Draw(dst, extent, obj).Empty() {
				st.Clipped++
			}
			st.Objects++
		}
	}
	return
}

// Draw draws one result and returns its clamped box.
func (c *Composer) Draw(dst *frame.PixelBuffer, extent image.Rectangle, obj classification.Result) image.Rectangle {
	box := Clamp(obj.Rect(), extent)
	label := FormatLabel(obj.Name, obj.Distance)

	strokeRect(dst, box, BoxColor)

	size, baseline := c.face.Measure(label)
	anchor := Center(box)
	anchor.X -= size.X / 2

	bg := image.Rectangle{
		Min: image.Pt(anchor.X, anchor.Y-size.Y),
		Max: image.Pt(anchor.X+size.X, anchor.Y+baseline),
	}
	dst.Fill(bg, LabelBackground)
	c.face.Draw(dst, label, anchor, LabelColor)

	return box
}

// strokeRect draws a 1px outline on the pixels just inside r.
func strokeRect(dst *frame.PixelBuffer, r image.Rectangle, c color.Color) {
	if r.Empty() {
		return
	}
	x1, y1 := r.Max.X-1, r.Max.Y-1
	dst.Fill(image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), c)
	dst.Fill(image.Rect(r.Min.X, y1, r.Max.X, r.Max.Y), c)
	dst.Fill(image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), c)
	dst.Fill(image.Rect(x1, r.Min.Y, r.Max.X, r.Max.Y), c)
}
