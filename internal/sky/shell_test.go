package sky

import (
	"math"
	"testing"
)

func TestNewShellValidation(t *testing.T) {
	if _, err := NewShell(1, 13, 4); err == nil {
		t.Error("NewShell with invalid pixel count succeeded, want error")
	}
	if _, err := NewShell(1, 768, 0); err == nil {
		t.Error("NewShell with zero frequencies succeeded, want error")
	}
	s, err := NewShell(0, 768, 4)
	if err != nil {
		t.Fatalf("NewShell: %v", err)
	}
	if s.Nskies != 1 {
		t.Errorf("Nskies = %d, want 1 for the 2-D case", s.Nskies)
	}
	if len(s.Data) != 768*4 {
		t.Errorf("data length = %d, want %d", len(s.Data), 768*4)
	}
	nside, err := s.Nside()
	if err != nil || nside != 8 {
		t.Errorf("Nside() = (%d, %v), want (8, nil)", nside, err)
	}
}

func TestFromData(t *testing.T) {
	data := make([]float64, 2*12*3)
	data[(1*12+7)*3+2] = 42
	s, err := FromData(2, 12, 3, data)
	if err != nil {
		t.Fatalf("FromData: %v", err)
	}
	if got := s.At(1, 7, 2); got != 42 {
		t.Errorf("At(1, 7, 2) = %v, want 42", got)
	}
	if _, err := FromData(2, 12, 3, data[:10]); err == nil {
		t.Error("FromData with short slice succeeded, want error")
	}
}

func TestAtSetRoundTrip(t *testing.T) {
	s, err := NewShell(2, 48, 3)
	if err != nil {
		t.Fatal(err)
	}
	s.Set(1, 17, 2, -3.5)
	if got := s.At(1, 17, 2); got != -3.5 {
		t.Errorf("At = %v, want -3.5", got)
	}
	if got := s.At(0, 17, 2); got != 0 {
		t.Errorf("neighboring realization contaminated: %v", got)
	}
}

func TestNewGaussianShell(t *testing.T) {
	freqs := []float64{1.0e8, 1.1e8, 1.2e8, 1.3e8}
	s, err := NewGaussianShell(2, 8, freqs, 2.0, 7)
	if err != nil {
		t.Fatalf("NewGaussianShell: %v", err)
	}
	if s.Nskies != 2 || s.Npix != 768 || s.Nfreqs != 4 {
		t.Fatalf("shape = (%d, %d, %d), want (2, 768, 4)", s.Nskies, s.Npix, s.Nfreqs)
	}

	// Sample mean should be near zero and the variance near the scaled
	// sigma for each channel (same order as the input sigma).
	for fi := range freqs {
		var sum, sumSq float64
		n := float64(s.Nskies * s.Npix)
		for sk := 0; sk < s.Nskies; sk++ {
			for p := 0; p < s.Npix; p++ {
				v := s.At(sk, p, fi)
				sum += v
				sumSq += v * v
			}
		}
		mean := sum / n
		std := math.Sqrt(sumSq/n - mean*mean)
		if math.Abs(mean) > 0.2 {
			t.Errorf("channel %d: mean %v, want ~0", fi, mean)
		}
		if std < 1.0 || std > 4.0 {
			t.Errorf("channel %d: std %v, want near 2", fi, std)
		}
	}

	// Deterministic under a fixed seed.
	s2, err := NewGaussianShell(2, 8, freqs, 2.0, 7)
	if err != nil {
		t.Fatal(err)
	}
	for i := range s.Data {
		if s.Data[i] != s2.Data[i] {
			t.Fatalf("shells differ at %d under identical seeds", i)
		}
	}
}

func TestNewGaussianShellValidation(t *testing.T) {
	freqs := []float64{1.0e8, 1.1e8}
	if _, err := NewGaussianShell(1, 0, freqs, 1, 1); err == nil {
		t.Error("invalid Nside accepted, want error")
	}
	if _, err := NewGaussianShell(1, 8, []float64{1e8}, 1, 1); err == nil {
		t.Error("single-channel shell accepted, want error")
	}
	if _, err := NewGaussianShell(1, 8, freqs, -1, 1); err == nil {
		t.Error("negative sigma accepted, want error")
	}
}
