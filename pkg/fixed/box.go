package fixed

// Box side indices, in the order bounding boxes are stored on disk.
const (
	BoxTop = iota
	BoxBottom
	BoxLeft
	BoxRight
)

// Box is an axis aligned bounding box indexed by BoxTop..BoxRight.
type Box [4]Fixed

// EmptyBox returns a cleared box that any added point will replace.
func EmptyBox() Box {
	var b Box
	b.Clear()
	return b
}

// Clear resets the box so that the next Add initialises it.
func (b *Box) Clear() {
	b[BoxTop] = Min
	b[BoxRight] = Min
	b[BoxBottom] = Max
	b[BoxLeft] = Max
}

// Add grows the box to include (x, y).
func (b *Box) Add(x, y Fixed) {
	if x < b[BoxLeft] {
		b[BoxLeft] = x
	}
	if x > b[BoxRight] {
		b[BoxRight] = x
	}
	if y < b[BoxBottom] {
		b[BoxBottom] = y
	}
	if y > b[BoxTop] {
		b[BoxTop] = y
	}
}

// IsEmpty reports whether nothing has been added since Clear.
func (b Box) IsEmpty() bool {
	return b[BoxLeft] > b[BoxRight] || b[BoxBottom] > b[BoxTop]
}

// Center returns the midpoint of the box. Each coordinate is the
// truncated half of the 32-bit sum of the opposite edges.
func (b Box) Center() Point {
	return Point{
		X: (b[BoxRight] + b[BoxLeft]) / 2,
		Y: (b[BoxTop] + b[BoxBottom]) / 2,
	}
}

// Contains reports whether (x, y) lies inside the box, edges included.
func (b Box) Contains(x, y Fixed) bool {
	return x >= b[BoxLeft] && x <= b[BoxRight] && y >= b[BoxBottom] && y <= b[BoxTop]
}
