// Package healpix implements the RING-scheme HEALPix pixelization of the
// sphere: Npix = 12*Nside^2 equal-area pixels arranged on iso-latitude rings.
//
// Only the operations needed for sky-shell processing are provided: pixel
// center lookup, lon/lat conversion, and a spherical-cap disc query.
package healpix

import (
	"fmt"
	"math"
)

// Vec3 is a unit direction vector (x, y, z).
type Vec3 [3]float64

// Dot returns the scalar product of v and u.
func (v Vec3) Dot(u Vec3) float64 {
	return v[0]*u[0] + v[1]*u[1] + v[2]*u[2]
}

// Cross returns the vector product v x u.
func (v Vec3) Cross(u Vec3) Vec3 {
	return Vec3{
		v[1]*u[2] - v[2]*u[1],
		v[2]*u[0] - v[0]*u[2],
		v[0]*u[1] - v[1]*u[0],
	}
}

// NsideFromNpix returns the Nside resolution parameter for a total pixel
// count, or an error if npix is not of the form 12*Nside^2.
func NsideFromNpix(npix int) (int, error) {
	if npix <= 0 {
		return 0, fmt.Errorf("healpix: invalid pixel count %d", npix)
	}
	nside := int(math.Round(math.Sqrt(float64(npix) / 12.0)))
	if nside < 1 || 12*nside*nside != npix {
		return 0, fmt.Errorf("healpix: %d is not a valid HEALPix pixel count (12*Nside^2)", npix)
	}
	return nside, nil
}

// Npix returns the total pixel count for a resolution parameter.
func Npix(nside int) int {
	return 12 * nside * nside
}

// PixArea returns the solid angle of one pixel in steradians. All HEALPix
// pixels have equal area by construction.
func PixArea(nside int) float64 {
	return 4 * math.Pi / float64(Npix(nside))
}

// ring describes one iso-latitude ring in the RING scheme.
type ring struct {
	start  int     // first pixel index on the ring
	count  int     // number of pixels on the ring
	z      float64 // cos(colatitude) of all pixel centers on the ring
	offset float64 // azimuthal offset in units of the pixel spacing
}

// ringInfo returns the layout of ring i, counted 1..4*nside-1 from the north
// pole.
func ringInfo(nside, i int) ring {
	npix := Npix(nside)
	ncap := 2 * nside * (nside - 1)
	switch {
	case i < nside: // north polar cap
		return ring{
			start:  2 * i * (i - 1),
			count:  4 * i,
			z:      1 - float64(i*i)/(3*float64(nside)*float64(nside)),
			offset: 0.5,
		}
	case i <= 3*nside: // equatorial belt
		off := 0.0
		if (i+nside)%2 == 0 {
			off = 0.5
		}
		return ring{
			start:  ncap + (i-nside)*4*nside,
			count:  4 * nside,
			z:      float64(2*nside-i) * 2 / (3 * float64(nside)),
			offset: off,
		}
	default: // south polar cap, mirror of the north
		j := 4*nside - i
		return ring{
			start:  npix - 2*j*(j+1),
			count:  4 * j,
			z:      -1 + float64(j*j)/(3*float64(nside)*float64(nside)),
			offset: 0.5,
		}
	}
}

// ringOf returns the ring index (1-based from the north pole) containing pix.
func ringOf(nside, pix int) int {
	npix := Npix(nside)
	ncap := 2 * nside * (nside - 1)
	switch {
	case pix < ncap:
		i := int((1 + math.Sqrt(float64(1+2*pix))) / 2)
		// Guard against floating-point sqrt landing one ring off.
		for 2*i*(i-1) > pix {
			i--
		}
		for 2*i*(i+1) <= pix {
			i++
		}
		return i
	case pix < npix-ncap:
		return nside + (pix-ncap)/(4*nside)
	default:
		ip := npix - pix
		j := int((1 + math.Sqrt(float64(2*ip-1))) / 2)
		for npix-2*j*(j+1) > pix {
			j++
		}
		for j > 1 && npix-2*(j-1)*j <= pix {
			j--
		}
		return 4*nside - j
	}
}

// PixToAng returns the (colatitude, longitude) of a pixel center in radians.
// Colatitude runs 0 at the north pole to pi at the south pole.
func PixToAng(nside, pix int) (theta, phi float64) {
	r := ringInfo(nside, ringOf(nside, pix))
	k := pix - r.start
	theta = math.Acos(r.z)
	phi = (float64(k) + r.offset) * 2 * math.Pi / float64(r.count)
	return theta, phi
}

// PixToVec returns the unit vector of a pixel center.
func PixToVec(nside, pix int) Vec3 {
	theta, phi := PixToAng(nside, pix)
	st := math.Sin(theta)
	return Vec3{st * math.Cos(phi), st * math.Sin(phi), math.Cos(theta)}
}

// AngToVec converts longitude/latitude in degrees to a unit vector.
func AngToVec(lonDeg, latDeg float64) Vec3 {
	lon := lonDeg * math.Pi / 180
	lat := latDeg * math.Pi / 180
	cl := math.Cos(lat)
	return Vec3{cl * math.Cos(lon), cl * math.Sin(lon), math.Sin(lat)}
}

// QueryDisc returns the pixels whose centers lie within radiusRad of the
// given direction, in ascending index order.
//
// Rings entirely outside the cap's colatitude band are skipped; pixels on the
// remaining rings are kept by an exact dot-product test against the cap
// boundary.
func QueryDisc(nside int, center Vec3, radiusRad float64) []int {
	if radiusRad <= 0 {
		return nil
	}
	if radiusRad >= math.Pi {
		pix := make([]int, Npix(nside))
		for i := range pix {
			pix[i] = i
		}
		return pix
	}
	cosr := math.Cos(radiusRad)
	thetaC := math.Acos(math.Max(-1, math.Min(1, center[2])))
	zMax := math.Cos(math.Max(thetaC-radiusRad, 0))
	zMin := math.Cos(math.Min(thetaC+radiusRad, math.Pi))

	var pix []int
	for i := 1; i <= 4*nside-1; i++ {
		r := ringInfo(nside, i)
		if r.z > zMax || r.z < zMin {
			continue
		}
		st := math.Sqrt(1 - r.z*r.z)
		dphi := 2 * math.Pi / float64(r.count)
		for k := 0; k < r.count; k++ {
			phi := (float64(k) + r.offset) * dphi
			v := Vec3{st * math.Cos(phi), st * math.Sin(phi), r.z}
			if v.Dot(center) >= cosr {
				pix = append(pix, r.start+k)
			}
		}
	}
	return pix
}
