package healpix

import (
	"math"
	"testing"
)

func TestNsideFromNpix(t *testing.T) {
	tests := []struct {
		npix  int
		nside int
		ok    bool
	}{
		{12, 1, true},
		{48, 2, true},
		{768, 8, true},
		{196608, 128, true},
		{300, 5, true}, // 12*5^2: integer Nside, valid
		{0, 0, false},
		{-12, 0, false},
		{13, 0, false},
		{196607, 0, false},
	}
	for _, tt := range tests {
		nside, err := NsideFromNpix(tt.npix)
		if tt.ok && (err != nil || nside != tt.nside) {
			t.Errorf("NsideFromNpix(%d) = (%d, %v), want (%d, nil)", tt.npix, nside, err, tt.nside)
		}
		if !tt.ok && err == nil {
			t.Errorf("NsideFromNpix(%d) = (%d, nil), want error", tt.npix, nside)
		}
	}
}

// TestRingCoverage checks that the rings partition the pixel index space
// exactly: contiguous, non-overlapping, covering 0..Npix-1.
func TestRingCoverage(t *testing.T) {
	for _, nside := range []int{1, 2, 4, 8, 16} {
		next := 0
		for i := 1; i <= 4*nside-1; i++ {
			r := ringInfo(nside, i)
			if r.start != next {
				t.Fatalf("nside=%d ring %d starts at %d, want %d", nside, i, r.start, next)
			}
			if r.z <= -1 || r.z >= 1 {
				t.Fatalf("nside=%d ring %d has z=%v outside (-1, 1)", nside, i, r.z)
			}
			next += r.count
		}
		if next != Npix(nside) {
			t.Fatalf("nside=%d rings cover %d pixels, want %d", nside, next, Npix(nside))
		}
	}
}

// TestRingOf checks the inverse ring lookup for every pixel.
func TestRingOf(t *testing.T) {
	for _, nside := range []int{1, 2, 4, 8} {
		for i := 1; i <= 4*nside-1; i++ {
			r := ringInfo(nside, i)
			for k := 0; k < r.count; k++ {
				if got := ringOf(nside, r.start+k); got != i {
					t.Fatalf("nside=%d ringOf(%d) = %d, want %d", nside, r.start+k, got, i)
				}
			}
		}
	}
}

func TestPixToVecUnitNorm(t *testing.T) {
	const nside = 8
	for p := 0; p < Npix(nside); p++ {
		v := PixToVec(nside, p)
		n := math.Sqrt(v.Dot(v))
		if math.Abs(n-1) > 1e-12 {
			t.Fatalf("pixel %d: |v| = %v, want 1", p, n)
		}
	}
}

// TestPixToAngKnown checks a few pixel centers against healpy reference
// values (RING scheme).
func TestPixToAngKnown(t *testing.T) {
	tests := []struct {
		nside      int
		pix        int
		theta, phi float64
	}{
		// healpy.pix2ang(1, 0) and healpy.pix2ang(1, 4)
		{1, 0, math.Acos(2.0 / 3.0), math.Pi / 4},
		{1, 4, math.Pi / 2, 0},
		// healpy.pix2ang(2, 0): z = 1 - 1/12
		{2, 0, math.Acos(11.0 / 12.0), math.Pi / 4},
		// first pixel of the south cap of nside=2
		{2, 44, math.Acos(-11.0 / 12.0), math.Pi / 4},
	}
	for _, tt := range tests {
		theta, phi := PixToAng(tt.nside, tt.pix)
		if math.Abs(theta-tt.theta) > 1e-12 || math.Abs(phi-tt.phi) > 1e-12 {
			t.Errorf("PixToAng(%d, %d) = (%v, %v), want (%v, %v)",
				tt.nside, tt.pix, theta, phi, tt.theta, tt.phi)
		}
	}
}

// TestQueryDisc cross-checks the ring-banded query against a brute-force
// scan over all pixels.
func TestQueryDisc(t *testing.T) {
	const nside = 8
	centers := []Vec3{
		AngToVec(0, 90),    // north pole
		AngToVec(0, 0),     // equator
		AngToVec(120, -45), // southern mid-latitude
		AngToVec(300, 88),  // near-polar
	}
	for _, radius := range []float64{0.05, 0.3, 1.0, 2.5} {
		for _, c := range centers {
			got := QueryDisc(nside, c, radius)
			cosr := math.Cos(radius)

			var want []int
			for p := 0; p < Npix(nside); p++ {
				if PixToVec(nside, p).Dot(c) >= cosr {
					want = append(want, p)
				}
			}
			if len(got) != len(want) {
				t.Fatalf("radius %v center %v: got %d pixels, want %d", radius, c, len(got), len(want))
			}
			for i := range got {
				if got[i] != want[i] {
					t.Fatalf("radius %v center %v: pixel list diverges at %d: %d != %d", radius, c, i, got[i], want[i])
				}
			}
			// All selected pixels are within the cap.
			for _, p := range got {
				sep := math.Acos(math.Min(1, PixToVec(nside, p).Dot(c)))
				if sep > radius+1e-12 {
					t.Fatalf("pixel %d at separation %v exceeds radius %v", p, sep, radius)
				}
			}
		}
	}
}

func TestQueryDiscFullSphere(t *testing.T) {
	const nside = 4
	got := QueryDisc(nside, AngToVec(17, 23), math.Pi)
	if len(got) != Npix(nside) {
		t.Errorf("full-sphere query returned %d pixels, want %d", len(got), Npix(nside))
	}
}

func TestPixArea(t *testing.T) {
	if got := PixArea(1); math.Abs(got-4*math.Pi/12) > 1e-15 {
		t.Errorf("PixArea(1) = %v, want %v", got, 4*math.Pi/12)
	}
}
