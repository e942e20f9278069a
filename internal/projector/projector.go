// Package projector selects the HEALPix pixels visible within a field of
// view around a pointing center and expresses their directions in a local
// tangent-plane frame as (azimuth, zenith angle) pairs.
//
// The projection is orthographic: the sky patch is treated as flat at the
// pointing center. Distortion grows toward the cap edge, so fields of view
// approaching the full sky are a known approximation, not supported exactly.
package projector

import (
	"errors"
	"math"

	"github.com/aelanman/eorsky/internal/healpix"
)

// ErrFOVUnset is returned when Project is called before a field of view has
// been configured.
var ErrFOVUnset = errors.New("projector: field of view not set")

// Projector computes local tangent-plane coordinates for sky-shell pixels.
type Projector struct {
	Nside  int
	FOVDeg float64 // full width of the observed cap, degrees
}

// Project selects the pixels within FOVDeg/2 of the pointing center
// (lon/lat = RA/Dec, degrees) and returns their local azimuth and zenith
// angle in radians along with the pixel indices, ascending.
//
// Azimuth is zero toward the local North axis of the tangent frame and
// increases eastward; zenith angle is measured from the pointing direction.
func (p Projector) Project(raDeg, decDeg float64) (az, za []float64, pix []int, err error) {
	if p.FOVDeg <= 0 {
		return nil, nil, nil, ErrFOVUnset
	}
	radius := p.FOVDeg * math.Pi / 180 / 2
	cvec := healpix.AngToVec(raDeg, decDeg)
	pix = healpix.QueryDisc(p.Nside, cvec, radius)

	xvec, yvec := tangentFrame(cvec, decDeg)

	az = make([]float64, len(pix))
	za = make([]float64, len(pix))
	for i, px := range pix {
		v := healpix.PixToVec(p.Nside, px)
		sz := math.Max(-1, math.Min(1, v.Dot(cvec)))
		za[i] = math.Acos(sz)
		a := math.Atan2(v.Dot(xvec), v.Dot(yvec))
		if a < 0 {
			a += 2 * math.Pi
		}
		az[i] = a
	}
	return az, za, pix, nil
}

// tangentFrame builds the right-handed orthonormal frame of the tangent
// plane at cvec: x points east, y north, cvec is the local zenith.
func tangentFrame(cvec healpix.Vec3, decDeg float64) (xvec, yvec healpix.Vec3) {
	sinColat := math.Sin((90 - decDeg) * math.Pi / 180)
	if math.Abs(sinColat) < 1e-9 {
		// Pointing at a celestial pole: east is degenerate, so fix the
		// frame with the +y axis as the azimuth reference.
		xvec = healpix.Vec3{0, 1, 0}
		if decDeg < 0 {
			xvec = healpix.Vec3{0, -1, 0}
		}
	} else {
		xvec = healpix.Vec3{-cvec[1] / sinColat, cvec[0] / sinColat, 0}
	}
	yvec = cvec.Cross(xvec)
	return xvec, yvec
}
