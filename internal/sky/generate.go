package sky

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/aelanman/eorsky/internal/cosmo"
	"github.com/aelanman/eorsky/internal/healpix"
)

// NewGaussianShell generates a zero-mean Gaussian random shell with a flat
// power spectrum. The per-channel standard deviation is scaled by the square
// root of the comoving voxel volume ratio relative to the central channel,
// so the brightness variance per comoving volume is constant across the
// band.
func NewGaussianShell(nskies, nside int, freqsHz []float64, sigmaK float64, seed uint64) (*Shell, error) {
	if nside < 1 {
		return nil, fmt.Errorf("sky: invalid Nside %d", nside)
	}
	if len(freqsHz) < 2 {
		return nil, fmt.Errorf("sky: need at least two frequency channels, got %d", len(freqsHz))
	}
	if sigmaK < 0 {
		return nil, fmt.Errorf("sky: negative sky sigma %v", sigmaK)
	}
	npix := healpix.Npix(nside)
	s, err := NewShell(nskies, npix, len(freqsHz))
	if err != nil {
		return nil, err
	}

	dnuMHz := (freqsHz[1] - freqsHz[0]) / 1e6
	omega := healpix.PixArea(nside)
	dV0 := cosmo.ComovingVoxelVolume(cosmo.Redshift21cm(freqsHz[len(freqsHz)/2]), dnuMHz, omega)

	src := rand.NewSource(seed)
	for fi, f := range freqsHz {
		dV := cosmo.ComovingVoxelVolume(cosmo.Redshift21cm(f), dnuMHz, omega)
		dist := distuv.Normal{Mu: 0, Sigma: sigmaK * math.Sqrt(dV0/dV), Src: src}
		for sk := 0; sk < s.Nskies; sk++ {
			for p := 0; p < npix; p++ {
				s.Set(sk, p, fi, dist.Rand())
			}
		}
	}
	return s, nil
}
