package units

import (
	"math"
	"testing"
)

// TestJy2TStrKnownValue checks against a hand-computed reference at 150 MHz
// with a 1 sr reference area.
func TestJy2TStrKnownValue(t *testing.T) {
	lambdaCm := SpeedOfLight * 100 / 1.5e8
	want := 1e-23 * lambdaCm * lambdaCm / (2 * 1.380658e-16)
	if got := Jy2TStr(1.5e8, 1.0); math.Abs(got-want) > 1e-20 {
		t.Errorf("Jy2TStr(1.5e8, 1) = %v, want %v", got, want)
	}
}

// TestJy2TStrMonotonic: strictly positive and strictly decreasing in
// frequency for a fixed reference area.
func TestJy2TStrMonotonic(t *testing.T) {
	const omega = 1e-5
	prev := math.Inf(1)
	for f := 5.0e7; f <= 3.0e8; f += 5.0e6 {
		v := Jy2TStr(f, omega)
		if v <= 0 {
			t.Fatalf("Jy2TStr(%v) = %v, want > 0", f, v)
		}
		if v >= prev {
			t.Fatalf("Jy2TStr(%v) = %v, not decreasing (previous %v)", f, v, prev)
		}
		prev = v
	}
}

// TestJy2TStrScalesInverseOmega: doubling the reference area halves the
// factor.
func TestJy2TStrScalesInverseOmega(t *testing.T) {
	a := Jy2TStr(1.2e8, 1.0)
	b := Jy2TStr(1.2e8, 2.0)
	if math.Abs(a/b-2) > 1e-12 {
		t.Errorf("Jy2TStr ratio = %v, want 2", a/b)
	}
}
