package latlon

import "math"

const π = math.Pi

// LatLon is a position in degrees.
type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// FromColatitude returns the position at colatitude a (radians from the
// north pole) on meridian lon (degrees).
func FromColatitude(a float64, lon float64) LatLon {
	return LatLon{Lat: 90 - toDegrees(a), Lon: Wrap180(lon)}
}

// Colatitude is the angular distance from the north pole in radians.
func (p LatLon) Colatitude() float64 {
	return toRadians(90 - p.Lat)
}

func toRadians(a float64) float64 {
	return a * π / 180.0
}

func toDegrees(a float64) float64 {
	return a * 180.0 / π
}

func Wrap360(d float64) float64 {
	if 0.0 <= d && d < 360.0 {
		return d
	}
	return math.Mod(math.Mod(d, 360.0)+360.0, 360.0)
}

func Wrap180(d float64) float64 {
	if -180.0 <= d && d < 180.0 {
		return d
	}
	return Wrap360(d+180.0) - 180.0
}
