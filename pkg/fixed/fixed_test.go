package fixed

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestFromInt(t *testing.T) {
	tests := []struct {
		in   int16
		want Fixed
	}{
		{0, 0},
		{1, 0x10000},
		{100, 100 << FracBits},
		{-200, -200 << FracBits},
		{32767, 32767 << FracBits},
		{-32768, -32768 << FracBits},
	}

	for _, tc := range tests {
		if got := FromInt(tc.in); got != tc.want {
			t.Errorf("FromInt(%d) = %d, expected %d", tc.in, got, tc.want)
		}
		if got := FromInt(tc.in).Int(); got != int(tc.in) {
			t.Errorf("FromInt(%d).Int() = %d", tc.in, got)
		}
	}
}

func TestDiv(t *testing.T) {
	tests := []struct {
		name string
		a, b Fixed
		want Fixed
	}{
		{"whole", FromInt(6), FromInt(3), FromInt(2)},
		{"fraction", FromInt(1), FromInt(2), FracUnit / 2},
		{"negative", FromInt(-6), FromInt(3), FromInt(-2)},
		{"divide by zero positive", FromInt(1), 0, Max},
		{"divide by zero negative", FromInt(-1), 0, Min},
		{"overflow mixed sign", FromInt(30000), -1, Min},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Div(tc.a, tc.b); got != tc.want {
				t.Errorf("Div(%v, %v) = %v, expected %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestMul(t *testing.T) {
	if got := Mul(FromInt(3), FracUnit/2); got != FromInt(3)/2 {
		t.Errorf("Mul(3, 0.5) = %v", got)
	}
	if got := Mul(FromInt(-4), FromInt(4)); got != FromInt(-16) {
		t.Errorf("Mul(-4, 4) = %v", got)
	}
}

func TestAngleFromShort(t *testing.T) {
	if got := AngleFromShort(0x4000); got != Angle90 {
		t.Errorf("expected 90 degrees, got %#x", uint32(got))
	}
	if got := AngleFromShort(-0x8000); got != Angle180 {
		t.Errorf("expected 180 degrees, got %#x", uint32(got))
	}
	if got := AngleFromShort(-0x4000); got != Angle270 {
		t.Errorf("expected 270 degrees, got %#x", uint32(got))
	}
}

func TestAngleConversions(t *testing.T) {
	if got := AngleFromDegrees(90); got != Angle90 {
		t.Errorf("AngleFromDegrees(90) = %#x", uint32(got))
	}
	if got := AngleFromDegrees(-90); got != Angle270 {
		t.Errorf("AngleFromDegrees(-90) = %#x", uint32(got))
	}
	if got := Angle180.Radians(); math32.Abs(got-math32.Pi) > 1e-5 {
		t.Errorf("Angle180.Radians() = %f", got)
	}
	if got := Angle90.Degrees(); got != 90 {
		t.Errorf("Angle90.Degrees() = %f", got)
	}
	d := Angle90.Direction()
	if math32.Abs(d.X) > 1e-5 || math32.Abs(d.Y-1) > 1e-5 {
		t.Errorf("Angle90.Direction() = %+v", d)
	}
}

func TestBox(t *testing.T) {
	b := EmptyBox()
	if !b.IsEmpty() {
		t.Fatal("cleared box should be empty")
	}

	// Decreasing x must still set both edges.
	b.Add(FromInt(10), FromInt(5))
	b.Add(FromInt(-10), FromInt(-5))

	want := Box{FromInt(5), FromInt(-5), FromInt(-10), FromInt(10)}
	if b != want {
		t.Errorf("box = %v, expected %v", b, want)
	}
	if c := b.Center(); c != (Point{}) {
		t.Errorf("center = %+v, expected origin", c)
	}
	if !b.Contains(0, 0) || b.Contains(FromInt(11), 0) {
		t.Error("Contains gave wrong answer")
	}
}

func TestVec2(t *testing.T) {
	p := Point{FromInt(3), FromInt(4)}
	if got := p.Vec2().Length(); got != 5 {
		t.Errorf("length = %f, expected 5", got)
	}
}
