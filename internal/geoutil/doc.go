// Package geoutil implements the geometry kernel: great-circle distance,
// degree/radian conversion, polyline interpolation, and the side-of-segment
// test that the rest of the pipeline builds on.
//
// Key features:
//   - Haversine(a, b): great-circle distance in meters, fixed Earth radius.
//   - Interpolate(points, thresholdM): resample a polyline so consecutive
//     samples are within thresholdM of each other.
//   - Side(a, b, test): right/left/undefined via 2-D cross product sign.
//
// Complexity:
//
//   - Haversine: O(1).
//   - Interpolate: O(n) in input points plus O(resulting samples).
//   - Side: O(1).
package geoutil

import "math"

// EarthRadiusM is the fixed Earth radius used by Haversine, in meters.
const EarthRadiusM = 6371000.0

// Point is a (lat, lon) pair in degrees.
type Point struct {
	Lat float64
	Lon float64
}

// Radians converts p to a (lat, lon) pair in radians.
func (p Point) Radians() Point {
	return Point{Lat: p.Lat * math.Pi / 180, Lon: p.Lon * math.Pi / 180}
}

// Haversine returns the great-circle distance between a and b in meters.
// Both points are taken in degrees unless unitRadians is true.
func Haversine(a, b Point, unitRadians bool) float64 {
	if !unitRadians {
		a = a.Radians()
		b = b.Radians()
	}

	dlat := b.Lat - a.Lat
	dlon := b.Lon - a.Lon

	sa := math.Sin(dlat/2)*math.Sin(dlat/2) + math.Cos(a.Lat)*math.Cos(b.Lat)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(sa), math.Sqrt(1-sa))

	return c * EarthRadiusM
}

// Sample is one point produced by Interpolate, tagged with the index of the
// polyline vertex it follows (for side-of-travel lookups in
// internal/ordering). It carries no segment identity; internal/ordering
// attaches the owning segment when it indexes samples.
type Sample struct {
	Point      Point // radians
	VertexIdx  int   // index of the polyline vertex this sample follows
	GlobalIdx  int   // position in the full interpolated sequence (set by caller)
}

// Interpolate resamples polyline (degrees) into evenly spaced points
// (radians) such that consecutive samples are at most thresholdM apart.
// The first and last input vertices are always included as samples.
func Interpolate(polyline []Point, thresholdM float64) []Sample {
	if len(polyline) == 0 {
		return nil
	}
	if thresholdM <= 0 {
		thresholdM = 60
	}

	out := make([]Sample, 0, len(polyline)*2)
	rad := make([]Point, len(polyline))
	for i, p := range polyline {
		rad[i] = p.Radians()
	}

	out = append(out, Sample{Point: rad[0], VertexIdx: 0})
	for i := 0; i < len(rad)-1; i++ {
		start, end := rad[i], rad[i+1]
		segLen := Haversine(start, end, true)
		if segLen <= thresholdM {
			out = append(out, Sample{Point: end, VertexIdx: i})
			continue
		}

		n := int(math.Ceil(segLen / thresholdM))
		for k := 1; k <= n; k++ {
			t := float64(k) / float64(n)
			out = append(out, Sample{
				Point:     Point{Lat: start.Lat + (end.Lat-start.Lat)*t, Lon: start.Lon + (end.Lon-start.Lon)*t},
				VertexIdx: i,
			})
		}
	}

	for i := range out {
		out[i].GlobalIdx = i
	}

	return out
}

// SideResult is the outcome of Side: the test point lies to the Right or
// Left of segment a→b, or Undefined when it coincides with an endpoint.
type SideResult int

const (
	Undefined SideResult = iota
	Right
	Left
)

// Side reports which side of segment a→b the point test lies on, using the
// sign of the 2-D cross product of (b-a) and (test-b). Points are in
// degrees (the cross-product sign is invariant to the degree/radian scale).
func Side(a, b, test Point) SideResult {
	if (test.Lat == a.Lat && test.Lon == a.Lon) || (test.Lat == b.Lat && test.Lon == b.Lon) {
		return Undefined
	}

	bx, by := b.Lon-a.Lon, b.Lat-a.Lat
	tx, ty := test.Lon-b.Lon, test.Lat-b.Lat
	cross := bx*ty - by*tx

	switch {
	case cross > 0:
		return Left
	case cross < 0:
		return Right
	default:
		return Undefined
	}
}

// Midpoint returns the arithmetic midpoint of a polyline's endpoints,
// matching the original's way-level midpoint cache (not a geodesic
// midpoint — the source only ever used this for rough indexing).
func Midpoint(polyline []Point) Point {
	if len(polyline) == 0 {
		return Point{}
	}
	first, last := polyline[0], polyline[len(polyline)-1]

	return Point{Lat: (first.Lat + last.Lat) / 2, Lon: (first.Lon + last.Lon) / 2}
}

// PolylineLength sums Haversine distance across consecutive polyline
// vertices (degrees in, meters out).
func PolylineLength(polyline []Point) float64 {
	var total float64
	for i := 0; i+1 < len(polyline); i++ {
		total += Haversine(polyline[i], polyline[i+1], false)
	}

	return total
}
