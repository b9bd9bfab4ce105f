package daregister

import "math"

// Rect is an axis-aligned rectangle in page coordinates. The origin is the
// top-left corner of the page (Y increases downward, after conversion from
// PDF coordinates).
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Right returns the right edge X coordinate.
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the bottom edge Y coordinate.
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// Area returns the area of the rectangle.
func (r Rect) Area() float64 {
	return r.Width * r.Height
}

// Intersect returns the overlapping rectangle of a and b, or a zero Rect
// when they do not overlap on either axis. The result never has negative
// dimensions.
func Intersect(a, b Rect) Rect {
	x := math.Max(a.X, b.X)
	y := math.Max(a.Y, b.Y)
	right := math.Min(a.Right(), b.Right())
	bottom := math.Min(a.Bottom(), b.Bottom())

	if right <= x || bottom <= y {
		return Rect{}
	}

	return Rect{
		X:      x,
		Y:      y,
		Width:  right - x,
		Height: bottom - y,
	}
}

// Union returns the smallest rectangle covering both a and b.
func Union(a, b Rect) Rect {
	x := math.Min(a.X, b.X)
	y := math.Min(a.Y, b.Y)
	right := math.Max(a.Right(), b.Right())
	bottom := math.Max(a.Bottom(), b.Bottom())

	return Rect{
		X:      x,
		Y:      y,
		Width:  right - x,
		Height: bottom - y,
	}
}

// OverlapPercentage returns how much of element lies inside region, as a
// percentage of the element's own area. A zero-area element yields 0.
// Normalising to the element rather than the region keeps small fragments
// easy to qualify and large ones harder, which matters near region edges.
func OverlapPercentage(element, region Rect) float64 {
	elementArea := element.Area()
	if elementArea == 0 {
		return 0
	}
	return Intersect(region, element).Area() * 100 / elementArea
}
