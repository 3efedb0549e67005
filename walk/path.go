package walk

import "github.com/a-bouts/earthwalker/latlon"

// Path is the three-legged walk: south along the meridian to Turn, one lap
// west along the parallel to Lap, north along the meridian to End.
type Path struct {
	Start latlon.LatLon `json:"start"`
	Turn  latlon.LatLon `json:"turn"`
	Lap   latlon.LatLon `json:"lap"`
	End   latlon.LatLon `json:"end"`
}

// Trace builds the walk starting at colatitude a on the prime meridian, each
// leg b long on the unit sphere.
func Trace(a, b float64) Path {
	var hav latlon.Haversine

	start := latlon.FromColatitude(a, 0)
	turn := hav.Destination(start, 180, b)
	lap := hav.Along(turn, -b)
	end := hav.Destination(lap, 0, b)

	return Path{Start: start, Turn: turn, Lap: lap, End: end}
}

// Headings are the bearings in degrees of the meridian legs, south then
// north.
func (p Path) Headings() (south, north float64) {
	var hav latlon.Haversine
	return hav.BearingTo(p.Start, p.Turn), hav.BearingTo(p.Lap, p.End)
}

// Gap is how far End lands from Start, scaled by r.
func (p Path) Gap(r float64) float64 {
	return latlon.Haversine{}.DistanceTo(p.End, p.Start) * r
}

// Closed reports whether the walk ends within tolerance radians of its start.
func (p Path) Closed(tolerance float64) bool {
	return p.Gap(1) <= tolerance
}
