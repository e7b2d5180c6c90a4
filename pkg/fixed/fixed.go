// Package fixed provides the 16.16 fixed-point scalar, binary angle and
// bounding box types shared by the map geometry decoders and their consumers.
package fixed

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

// FracBits is the width of the fractional part of a Fixed value.
const FracBits = 16

// Fixed is a signed 16.16 fixed-point number.
type Fixed int32

// Fixed-point constants.
const (
	FracUnit Fixed = 1 << FracBits
	Max      Fixed = math.MaxInt32
	Min      Fixed = math.MinInt32
)

// FromInt widens a whole map unit into fixed-point form.
// Source values are 16-bit on disk, so the shift never loses bits for them.
func FromInt[T constraints.Integer](n T) Fixed {
	return Fixed(int32(n) << FracBits)
}

// Int returns the whole part, rounding toward negative infinity.
func (f Fixed) Int() int {
	return int(f >> FracBits)
}

// Float32 returns f as a float32 in map units.
func (f Fixed) Float32() float32 {
	return float32(f) / float32(FracUnit)
}

// Float64 returns f as a float64 in map units.
func (f Fixed) Float64() float64 {
	return float64(f) / float64(FracUnit)
}

// String formats f in map units.
func (f Fixed) String() string {
	if f&(FracUnit-1) == 0 {
		return fmt.Sprintf("%d", f.Int())
	}
	return fmt.Sprintf("%.4f", f.Float64())
}

// Mul multiplies two fixed values.
func Mul(a, b Fixed) Fixed {
	return Fixed((int64(a) * int64(b)) >> FracBits)
}

// Div divides a by b. When the quotient would overflow (including b == 0)
// the result saturates to Max or Min with the sign of a^b, as the collision
// code expects.
func Div(a, b Fixed) Fixed {
	if abs64(int64(a))>>14 >= abs64(int64(b)) {
		if a^b < 0 {
			return Min
		}
		return Max
	}
	return Fixed((int64(a) << FracBits) / int64(b))
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
