package fixed

import "github.com/chewxy/math32"

// Angle is a binary angle measurement: the full circle maps onto 2^32.
type Angle uint32

// Common angles.
const (
	Angle45  Angle = 0x20000000
	Angle90  Angle = 0x40000000
	Angle180 Angle = 0x80000000
	Angle270 Angle = 0xc0000000
)

// AngleFromShort widens a 16-bit on-disk angle into a full binary angle.
func AngleFromShort(v int16) Angle {
	return Angle(uint32(uint16(v)) << 16)
}

// AngleFromDegrees converts whole degrees, as stored in thing records.
func AngleFromDegrees(deg int) Angle {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return Angle(uint64(deg) * (1 << 32) / 360)
}

// Radians returns the angle in radians in [0, 2π).
func (a Angle) Radians() float32 {
	return float32(a) * (2 * math32.Pi / (1 << 32))
}

// Degrees returns the angle in degrees in [0, 360).
func (a Angle) Degrees() float32 {
	return float32(float64(a) * (360.0 / (1 << 32)))
}

// Direction returns the unit vector pointing along the angle.
func (a Angle) Direction() Vec2 {
	s, c := math32.Sincos(a.Radians())
	return Vec2{X: c, Y: s}
}
