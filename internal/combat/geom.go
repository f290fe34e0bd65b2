package combat

// Point is a tile coordinate. A unit of size s at Point p covers the square
// [p.X, p.X+s) x [p.Y, p.Y+s).
type Point struct{ X, Y int }

func (a Point) Add(b Point) Point { return Point{a.X + b.X, a.Y + b.Y} }
func (a Point) Sub(b Point) Point { return Point{a.X - b.X, a.Y - b.Y} }

// Step moves one tile towards b on each axis.
func (a Point) Step(b Point) Point { return Point{a.X + sign(b.X-a.X), a.Y + sign(b.Y-a.Y)} }

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// Overlaps reports whether two footprints share a tile.
func Overlaps(a Point, asize int, b Point, bsize int) bool {
	return a.X < b.X+bsize && b.X < a.X+asize && a.Y < b.Y+bsize && b.Y < a.Y+asize
}

// gap is the Chebyshev distance between two footprints; 0 when they overlap,
// 1 when they touch.
func gap(a Point, asize int, b Point, bsize int) int {
	dx := max(0, b.X-(a.X+asize-1), a.X-(b.X+bsize-1))
	dy := max(0, b.Y-(a.Y+asize-1), a.Y-(b.Y+bsize-1))
	return max(dx, dy)
}
