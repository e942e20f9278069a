// Package sky holds the HEALPix sky shell: a brightness-temperature cube
// indexed by (sky realization, pixel, frequency channel).
//
// A Shell is shared by pointer across the visibility workers for the
// duration of one computation and must be treated as read-only while a
// computation is running.
package sky

import (
	"fmt"

	"github.com/aelanman/eorsky/internal/healpix"
)

// Shell is a dense brightness-temperature cube in Kelvin, row-major over
// (sky, pixel, frequency).
type Shell struct {
	Nskies int
	Npix   int
	Nfreqs int
	Data   []float64
}

// NewShell allocates a zeroed shell. nskies <= 1 describes the 2-D
// (pixels x frequencies) case.
func NewShell(nskies, npix, nfreqs int) (*Shell, error) {
	if nskies < 1 {
		nskies = 1
	}
	if npix < 1 || nfreqs < 1 {
		return nil, fmt.Errorf("sky: invalid shell shape (%d, %d, %d)", nskies, npix, nfreqs)
	}
	if _, err := healpix.NsideFromNpix(npix); err != nil {
		return nil, err
	}
	return &Shell{
		Nskies: nskies,
		Npix:   npix,
		Nfreqs: nfreqs,
		Data:   make([]float64, nskies*npix*nfreqs),
	}, nil
}

// FromData wraps an existing flat array without copying. The data length
// must match the shape exactly.
func FromData(nskies, npix, nfreqs int, data []float64) (*Shell, error) {
	s, err := NewShell(nskies, npix, nfreqs)
	if err != nil {
		return nil, err
	}
	if len(data) != s.Nskies*npix*nfreqs {
		return nil, fmt.Errorf("sky: data length %d does not match shape (%d, %d, %d)", len(data), s.Nskies, npix, nfreqs)
	}
	s.Data = data
	return s, nil
}

// Nside returns the HEALPix resolution parameter of the pixel axis.
func (s *Shell) Nside() (int, error) {
	return healpix.NsideFromNpix(s.Npix)
}

// At returns the brightness temperature at (sky, pixel, frequency).
func (s *Shell) At(sk, pix, freq int) float64 {
	return s.Data[(sk*s.Npix+pix)*s.Nfreqs+freq]
}

// Set stores a brightness temperature at (sky, pixel, frequency). Must not
// be called while a visibility computation is using the shell.
func (s *Shell) Set(sk, pix, freq int, v float64) {
	s.Data[(sk*s.Npix+pix)*s.Nfreqs+freq] = v
}
