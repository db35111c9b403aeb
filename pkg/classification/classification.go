// Package classification holds the objects found in a color frame.
package classification

import (
	"fmt"
	"image"
)

type Point struct{ X, Y int }

func (p Point) ImagePoint() image.Point { return image.Point{X: p.X, Y: p.Y} }

// Result is one detected object.
//
// The corner names come from the detector and do not imply which way y
// grows: the box spans TopRight - BottomLeft on both axes, so a caller
// passing corners the other way round gets a degenerate box.
type Result struct {
	Name string
	// Distance to the object in meters.
	Distance   float64
	BottomLeft Point
	TopRight   Point
}

// Rect returns the box as given, without canonicalizing negative extents.
func (r Result) Rect() image.Rectangle {
	return image.Rectangle{Min: r.BottomLeft.ImagePoint(), Max: r.TopRight.ImagePoint()}
}

func (r Result) String() string {
	return fmt.Sprintf("%s@%.2fm[%v,%v]", r.Name, r.Distance, r.BottomLeft, r.TopRight)
}

// Prioritised is a batch of results rendered together, in order.
type Prioritised struct {
	Priority int
	Objects  []Result
}

// Count returns the number of results over all groups.
func Count(groups []Prioritised) (n int) {
	for _, g := range groups {
		n += len(g.Objects)
	}
	return
}
