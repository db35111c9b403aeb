package overlay

import (
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// FormatLabel renders "<name> <distance> meters away" with the distance
// cut to two significant digits.
func FormatLabel(name string, distance float64) string {
	return name + " " + strconv.FormatFloat(distance, 'g', 2, 64) + " meters away"
}

// Face measures and draws label text.
type Face struct {
	font.Face
}

// DefaultFace is a small fixed-width face close to a simplex font at half scale.
func DefaultFace() Face { return Face{Face: basicfont.Face7x13} }

// Measure returns the text extent above the baseline and the depth below it.
func (f Face) Measure(text string) (size image.Point, baseline int) {
	m := f.Metrics()
	size.X = font.MeasureString(f.Face, text).Ceil()
	size.Y = m.Ascent.Ceil()
	baseline = m.Descent.Ceil()
	return
}

// Draw writes text with its baseline origin at dot.
func (f Face) Draw(dst draw.Image, text string, dot image.Point, c color.Color) {
	(&font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: f.Face,
		Dot:  fixed.P(dot.X, dot.Y),
	}).DrawString(text)
}
