// Package beam provides primary-beam power models: a uniform response, an
// analytic Gaussian, and a file-backed tabulated power beam interpolated
// over its native angular grid.
package beam

import (
	"fmt"
	"math"
)

// Model is the per-direction, per-frequency power response of an antenna.
// Implementations are immutable after construction and safe for concurrent
// use.
type Model interface {
	// Eval returns the power response at each (az[i], za[i]) direction in
	// radians. A non-positive freqHz selects the model's default frequency
	// channel. Power is in [0, 1] for normalized beams.
	Eval(az, za []float64, freqHz float64) ([]float64, error)
}

// New constructs an analytic beam by type name. Supported names are
// "uniform" and "gaussian"; the Gaussian requires a positive sigma in
// degrees. Unknown names fail here, never at evaluation time.
func New(beamType string, sigmaDeg float64) (Model, error) {
	switch beamType {
	case "uniform":
		return Uniform{}, nil
	case "gaussian":
		return NewGaussian(sigmaDeg)
	default:
		return nil, fmt.Errorf("beam: unsupported beam type %q", beamType)
	}
}

// Uniform is the unit response in every direction at every frequency.
type Uniform struct{}

// Eval returns 1.0 for every input direction.
func (Uniform) Eval(az, za []float64, freqHz float64) ([]float64, error) {
	if len(az) != len(za) {
		return nil, fmt.Errorf("beam: az/za length mismatch %d != %d", len(az), len(za))
	}
	out := make([]float64, len(za))
	for i := range out {
		out[i] = 1.0
	}
	return out, nil
}

// Gaussian is a peak-normalized, frequency-independent Gaussian power beam
// in zenith angle.
type Gaussian struct {
	sigmaRad float64
}

// NewGaussian constructs a Gaussian beam from a width in degrees.
func NewGaussian(sigmaDeg float64) (Gaussian, error) {
	if sigmaDeg <= 0 {
		return Gaussian{}, fmt.Errorf("beam: gaussian beam requires a positive sigma, got %v", sigmaDeg)
	}
	return Gaussian{sigmaRad: sigmaDeg * math.Pi / 180}, nil
}

// Sigma returns the beam width in radians.
func (g Gaussian) Sigma() float64 { return g.sigmaRad }

// Eval returns exp(-za²/2σ²) for every input direction.
func (g Gaussian) Eval(az, za []float64, freqHz float64) ([]float64, error) {
	if len(az) != len(za) {
		return nil, fmt.Errorf("beam: az/za length mismatch %d != %d", len(az), len(za))
	}
	out := make([]float64, len(za))
	for i, z := range za {
		out[i] = math.Exp(-(z * z) / (2 * g.sigmaRad * g.sigmaRad))
	}
	return out, nil
}
