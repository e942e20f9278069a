package transform

import "math"

// ZenithRADec returns the equatorial coordinates (right ascension,
// declination, degrees) of the point at local zenith for an observer at the
// given geodetic latitude/longitude (degrees, east-positive longitude) at a
// Julian Date (UTC).
//
// The zenith right ascension equals the local mean sidereal time and the
// declination equals the geodetic latitude. Precession and nutation beyond
// the IAU-82 GMST model are neglected; for drift-scan pointing centers this
// is accurate to well under the width of a HEALPix pixel at the resolutions
// in use.
func ZenithRADec(jd, latDeg, lonDeg float64) (raDeg, decDeg float64) {
	lst := GMSTFromJD(jd)*180/math.Pi + lonDeg
	raDeg = math.Mod(lst, 360)
	if raDeg < 0 {
		raDeg += 360
	}
	return raDeg, latDeg
}
