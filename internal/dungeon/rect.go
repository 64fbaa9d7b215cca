package dungeon

// Rect is an axis-aligned room rectangle. X2/Y2 are exclusive of the
// interior: the border cells stay wall and only x1+1..x2-1 is carved.
type Rect struct {
	X1, Y1, X2, Y2 int
}

// NewRect builds a Rect from an origin and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X1: x, Y1: y, X2: x + w, Y2: y + h}
}

// Center returns the middle cell of the rectangle.
func (r Rect) Center() (int, int) {
	return (r.X1 + r.X2) / 2, (r.Y1 + r.Y2) / 2
}

// Intersects reports whether two rectangles overlap, borders included.
func (r Rect) Intersects(other Rect) bool {
	return r.X1 <= other.X2 && r.X2 >= other.X1 &&
		r.Y1 <= other.Y2 && r.Y2 >= other.Y1
}
