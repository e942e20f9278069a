// Package pspec provides the delay-transform diagnostic: visibility spectra
// Fourier-transformed along the frequency axis, the standard first step of
// an EoR delay power spectrum.
package pspec

import (
	"fmt"

	"gonum.org/v1/gonum/dsp/fourier"
)

// DelaySpectrum transforms each visibility spectrum (one row per
// (time, baseline), channels on a regular frequency grid in Hz) to delay
// space and returns the squared magnitudes, plus the delay of each output
// bin in seconds (negative delays in the upper half, FFT ordering).
func DelaySpectrum(vis [][]complex128, freqsHz []float64) (power [][]float64, delays []float64, err error) {
	n := len(freqsHz)
	if n < 2 {
		return nil, nil, fmt.Errorf("pspec: need at least two frequency channels, got %d", n)
	}
	dnu := freqsHz[1] - freqsHz[0]
	if dnu <= 0 {
		return nil, nil, fmt.Errorf("pspec: frequency channels must be ascending")
	}

	delays = make([]float64, n)
	for i := range delays {
		k := i
		if i > n/2 {
			k = i - n
		}
		delays[i] = float64(k) / (float64(n) * dnu)
	}

	fft := fourier.NewCmplxFFT(n)
	coeff := make([]complex128, n)
	power = make([][]float64, len(vis))
	for r, row := range vis {
		if len(row) != n {
			return nil, nil, fmt.Errorf("pspec: row %d has %d channels, want %d", r, len(row), n)
		}
		coeff = fft.Coefficients(coeff, row)
		p := make([]float64, n)
		for i, c := range coeff {
			p[i] = real(c)*real(c) + imag(c)*imag(c)
		}
		power[r] = p
	}
	return power, delays, nil
}
