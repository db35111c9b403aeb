package overlay

import (
	"image"
	"math"
)

// Clamp intersects r with bounds.
// Unlike image.Rectangle.Intersect it never canonicalizes r first, so a
// box with negative extent stays empty instead of being flipped.
// An empty intersection is the zero rectangle.
func Clamp(r, bounds image.Rectangle) image.Rectangle {
	x0, y0 := max(r.Min.X, bounds.Min.X), max(r.Min.Y, bounds.Min.Y)
	x1, y1 := min(r.Max.X, bounds.Max.X), min(r.Max.Y, bounds.Max.Y)
	if x1 <= x0 || y1 <= y0 {
		return image.Rectangle{}
	}
	return image.Rect(x0, y0, x1, y1)
}

// Center is the midpoint of the top-left and bottom-right corners,
// rounded half to even.
func Center(r image.Rectangle) image.Point {
	return image.Point{
		X: int(math.RoundToEven(float64(r.Min.X+r.Max.X) * 0.5)),
		Y: int(math.RoundToEven(float64(r.Min.Y+r.Max.Y) * 0.5)),
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
