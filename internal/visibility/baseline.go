// Package visibility computes interferometric visibilities from a HEALPix
// sky shell: per-baseline fringes and beam weights over a projected sky
// patch, reduced to one complex value per (time, baseline, frequency) and
// parallelized over time chunks.
package visibility

import (
	"math"

	"github.com/aelanman/eorsky/internal/units"
)

// Baseline is the separation of two antennas in local East-North-Up meters.
// Immutable once constructed. A zero-length baseline is a valid
// autocorrelation and produces the unit fringe.
type Baseline struct {
	enu [3]float64
}

// NewBaseline constructs a baseline from two antenna positions in ENU
// meters, storing their difference ant1 - ant2.
func NewBaseline(ant1, ant2 [3]float64) Baseline {
	return Baseline{enu: [3]float64{
		ant1[0] - ant2[0],
		ant1[1] - ant2[1],
		ant1[2] - ant2[2],
	}}
}

// ENU returns the baseline vector in meters.
func (b Baseline) ENU() [3]float64 { return b.enu }

// Length returns the baseline length in meters.
func (b Baseline) Length() float64 {
	return math.Sqrt(b.enu[0]*b.enu[0] + b.enu[1]*b.enu[1] + b.enu[2]*b.enu[2])
}

// UVW returns the baseline vector in wavelengths at a frequency.
func (b Baseline) UVW(freqHz float64) [3]float64 {
	s := freqHz / units.SpeedOfLight
	return [3]float64{b.enu[0] * s, b.enu[1] * s, b.enu[2] * s}
}

// Fringe returns the complex interference pattern fringe[pixel][freq] =
// cos(2π u·l) + i sin(2π u·l) for directions given as azimuth/zenith-angle
// arrays in radians, where l = (sin az sin za, cos az sin za, cos za) is the
// direction cosine vector in ENU and u is the baseline in wavelengths.
func (b Baseline) Fringe(az, za, freqsHz []float64) [][]complex128 {
	out := make([][]complex128, len(az))
	for i := range az {
		sinZa := math.Sin(za[i])
		// Projection of the direction onto the baseline, in meters.
		proj := b.enu[0]*math.Sin(az[i])*sinZa +
			b.enu[1]*math.Cos(az[i])*sinZa +
			b.enu[2]*math.Cos(za[i])
		row := make([]complex128, len(freqsHz))
		for j, f := range freqsHz {
			phase := 2 * math.Pi * proj * f / units.SpeedOfLight
			s, c := math.Sincos(phase)
			row[j] = complex(c, s)
		}
		out[i] = row
	}
	return out
}

// FringeDegrees is Fringe with azimuth and zenith angle given in degrees.
func (b Baseline) FringeDegrees(azDeg, zaDeg, freqsHz []float64) [][]complex128 {
	az := make([]float64, len(azDeg))
	za := make([]float64, len(zaDeg))
	for i := range azDeg {
		az[i] = azDeg[i] * math.Pi / 180
		za[i] = zaDeg[i] * math.Pi / 180
	}
	return b.Fringe(az, za, freqsHz)
}
