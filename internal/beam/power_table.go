package beam

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/interp"
)

// Table is a tabulated power beam on a regular (frequency, zenith, azimuth)
// grid, as read from an external beam file. The file parsing itself lives
// with the caller; this package only consumes the in-memory grid.
type Table struct {
	FreqsHz     []float64     // frequency channels, ascending
	ZenithsRad  []float64     // zenith-angle grid, ascending, radians
	AzimuthsRad []float64     // azimuth grid, ascending, radians
	Power       [][][]float64 // Power[freq][zenith][azimuth], non-negative
}

// FileBackedPower interpolates a tabulated power beam at arbitrary
// directions using separable monotone cubic splines over the native angular
// grid. Queries outside the grid are clamped to its edges.
type FileBackedPower struct {
	table Table
	// azRow[f][iza] predicts power along the azimuth axis for one
	// zenith-angle grid row; fitted once at construction.
	azRow [][]interp.FritschButland
}

// NewFileBackedPower validates the table and prepares the interpolant.
// The default evaluation channel is the first frequency.
func NewFileBackedPower(t Table) (*FileBackedPower, error) {
	if len(t.FreqsHz) == 0 || len(t.ZenithsRad) < 2 || len(t.AzimuthsRad) < 2 {
		return nil, fmt.Errorf("beam: power table needs >=1 frequency and >=2 points per angular axis")
	}
	if !ascending(t.FreqsHz) || !ascending(t.ZenithsRad) || !ascending(t.AzimuthsRad) {
		return nil, fmt.Errorf("beam: power table axes must be strictly ascending")
	}
	if len(t.Power) != len(t.FreqsHz) {
		return nil, fmt.Errorf("beam: power table has %d frequency planes, want %d", len(t.Power), len(t.FreqsHz))
	}
	azRow := make([][]interp.FritschButland, len(t.FreqsHz))
	for fi, plane := range t.Power {
		if len(plane) != len(t.ZenithsRad) {
			return nil, fmt.Errorf("beam: frequency plane %d has %d zenith rows, want %d", fi, len(plane), len(t.ZenithsRad))
		}
		azRow[fi] = make([]interp.FritschButland, len(plane))
		for zi, row := range plane {
			if len(row) != len(t.AzimuthsRad) {
				return nil, fmt.Errorf("beam: plane %d row %d has %d azimuth samples, want %d", fi, zi, len(row), len(t.AzimuthsRad))
			}
			for _, p := range row {
				if p < 0 || math.IsNaN(p) {
					return nil, fmt.Errorf("beam: power table contains negative or NaN values")
				}
			}
			if err := azRow[fi][zi].Fit(t.AzimuthsRad, row); err != nil {
				return nil, fmt.Errorf("beam: fitting azimuth spline: %w", err)
			}
		}
	}
	return &FileBackedPower{table: t, azRow: azRow}, nil
}

// NewFileBackedPowerFromField builds a power beam from a complex field
// pattern grid shaped [polarization][freq][zenith][azimuth]. The first
// polarization is used; field values are squared to power and peak
// normalized.
func NewFileBackedPowerFromField(freqsHz, zenithsRad, azimuthsRad []float64, field [][][][]complex128) (*FileBackedPower, error) {
	if len(field) == 0 {
		return nil, fmt.Errorf("beam: field pattern has no polarizations")
	}
	ef := field[0]
	power := make([][][]float64, len(ef))
	peak := 0.0
	for fi, plane := range ef {
		power[fi] = make([][]float64, len(plane))
		for zi, row := range plane {
			power[fi][zi] = make([]float64, len(row))
			for ai, e := range row {
				p := cmplx.Abs(e)
				p *= p
				power[fi][zi][ai] = p
				if p > peak {
					peak = p
				}
			}
		}
	}
	if peak <= 0 {
		return nil, fmt.Errorf("beam: field pattern is identically zero")
	}
	for _, plane := range power {
		for _, row := range plane {
			for i := range row {
				row[i] /= peak
			}
		}
	}
	return NewFileBackedPower(Table{
		FreqsHz:     freqsHz,
		ZenithsRad:  zenithsRad,
		AzimuthsRad: azimuthsRad,
		Power:       power,
	})
}

// Eval interpolates the power beam at each (az[i], za[i]) direction for the
// nearest tabulated frequency channel; a non-positive freqHz selects the
// first channel.
func (b *FileBackedPower) Eval(az, za []float64, freqHz float64) ([]float64, error) {
	if len(az) != len(za) {
		return nil, fmt.Errorf("beam: az/za length mismatch %d != %d", len(az), len(za))
	}
	fi := 0
	if freqHz > 0 {
		fi = nearestIndex(b.table.FreqsHz, freqHz)
	}
	zen := b.table.ZenithsRad
	azAxis := b.table.AzimuthsRad
	out := make([]float64, len(az))
	col := make([]float64, len(zen))
	var zaSpline interp.FritschButland
	for i := range az {
		a := clamp(az[i], azAxis[0], azAxis[len(azAxis)-1])
		z := clamp(za[i], zen[0], zen[len(zen)-1])
		for zi := range zen {
			col[zi] = b.azRow[fi][zi].Predict(a)
		}
		if err := zaSpline.Fit(zen, col); err != nil {
			return nil, fmt.Errorf("beam: fitting zenith spline: %w", err)
		}
		// Monotone cubic interpolation of non-negative samples can still
		// round slightly below zero at machine precision.
		out[i] = math.Max(0, zaSpline.Predict(z))
	}
	return out, nil
}

func ascending(xs []float64) bool {
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return false
		}
	}
	return true
}

func nearestIndex(xs []float64, x float64) int {
	best, bestDist := 0, math.Inf(1)
	for i, v := range xs {
		if d := math.Abs(v - x); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
