// Package units holds physical constants and the radiometric unit
// conversions used by the visibility engine.
package units

// SpeedOfLight is c in m/s.
const SpeedOfLight = 299792458.0

// boltzmannCGS is the Boltzmann constant in erg/K.
const boltzmannCGS = 1.380658e-16

// Freq21cm is the rest frequency of the 21 cm hydrogen line in Hz.
const Freq21cm = 1420.0e6

// Jy2TStr returns the conversion factor [K sr]/[Jy] at a frequency (Hz) for
// a reference solid angle omegaSr (steradians). Dividing a brightness
// integral in K sr by this factor yields a flux density in Jy.
//
//	1e-23 * λ_cm² / (2 k_B Ω)
//
// with k_B in CGS. Strictly positive and monotonically decreasing in
// frequency for any fixed positive reference area.
func Jy2TStr(freqHz, omegaSr float64) float64 {
	lambdaCm := SpeedOfLight * 100 / freqHz
	return 1e-23 * lambdaCm * lambdaCm / (2 * boltzmannCGS * omegaSr)
}
