// Package cosmo provides the small set of flat-ΛCDM cosmology utilities the
// sky generator needs: comoving distance and comoving voxel volume.
//
// Parameters default to the Planck 2015 values used throughout the EoR
// literature.
package cosmo

import "math"

// Planck 2015 (TT,TE,EE+lowP+lensing+ext) flat ΛCDM.
const (
	H0     = 67.74  // Hubble constant, km/s/Mpc
	OmegaM = 0.3075 // matter density
	OmegaL = 1 - OmegaM

	hubbleDistMpc = 299792.458 / H0 // c/H0 in Mpc
)

// Redshift21cm returns the redshift at which the 21 cm line is observed at
// the given frequency (Hz).
func Redshift21cm(freqHz float64) float64 {
	return 1420e6/freqHz - 1
}

// efunc is the dimensionless Hubble parameter E(z).
func efunc(z float64) float64 {
	zp := 1 + z
	return math.Sqrt(OmegaM*zp*zp*zp + OmegaL)
}

// ComovingDistance returns the line-of-sight comoving distance to redshift z
// in Mpc, by composite Simpson integration of 1/E(z).
func ComovingDistance(z float64) float64 {
	if z <= 0 {
		return 0
	}
	const n = 256 // even
	h := z / n
	sum := 1/efunc(0) + 1/efunc(z)
	for i := 1; i < n; i++ {
		w := 2.0
		if i%2 == 1 {
			w = 4.0
		}
		sum += w / efunc(float64(i)*h)
	}
	return hubbleDistMpc * sum * h / 3
}

// DifferentialComovingVolume returns dV_c/dz/dΩ at redshift z in Mpc³/sr,
// for a flat universe: D_H · D_c(z)² / E(z).
func DifferentialComovingVolume(z float64) float64 {
	dc := ComovingDistance(z)
	return hubbleDistMpc * dc * dc / efunc(z)
}

// ComovingVoxelVolume returns the comoving volume in Mpc³ of a sky voxel at
// redshift z spanning a channel width dnuMHz (MHz, on the 21 cm line) and a
// pixel solid angle omegaSr.
func ComovingVoxelVolume(z, dnuMHz, omegaSr float64) float64 {
	nu0 := 1420/(z+1) - dnuMHz/2
	nu1 := nu0 + dnuMHz
	dz := 1420 * (1/nu0 - 1/nu1)
	return DifferentialComovingVolume(z) * dz * omegaSr
}
