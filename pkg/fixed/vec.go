package fixed

import "github.com/chewxy/math32"

// Point is a position in fixed-point map space.
type Point struct {
	X, Y Fixed
}

// Vec2 converts the point to floating map units for renderers and tools.
func (p Point) Vec2() Vec2 {
	return Vec2{p.X.Float32(), p.Y.Float32()}
}

// Vec2 is a 2D vector in floating map units.
type Vec2 struct {
	X, Y float32
}

// Length returns the magnitude.
func (v Vec2) Length() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y)
}
