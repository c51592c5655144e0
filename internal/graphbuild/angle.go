package graphbuild

import (
	"fmt"
	"math"

	"github.com/transitrepair/engine/internal/domain"
	"github.com/transitrepair/engine/internal/geoutil"
)

// degrees converts radians to degrees, matching the teacher's small inlined
// math helpers rather than a stdlib round trip.
func degrees(rad float64) float64 { return rad * (180 / math.Pi) }

// AngleBetween returns the turn angle in degrees between segment "from"
// (departing via fromAtEnd) and segment "to", measured at their shared node
// using the law of cosines over haversine side lengths. Returns an error if
// the two segments do not share an endpoint node.
func AngleBetween(from *domain.Segment, fromAtEnd bool, to *domain.Segment) (float64, error) {
	fromNear, fromFar, ok := nearFar(from, fromAtEnd)
	if !ok {
		return 0, fmt.Errorf("graphbuild: segment %s has too few nodes for an angle", from.Piece)
	}

	var toNear, toFar geoutil.Point
	matched := false

	for _, toAtEnd := range [2]bool{false, true} {
		candNear, candFar, ok := nearFar(to, toAtEnd)
		if !ok {
			continue
		}
		if samePoint(fromNear, candNear) {
			toNear, toFar, matched = candNear, candFar, true
			break
		}
	}

	if !matched {
		return 0, fmt.Errorf("graphbuild: segments %s and %s do not share an endpoint", from.Piece, to.Piece)
	}

	d12 := geoutil.Haversine(fromFar, fromNear, false)
	d23 := geoutil.Haversine(fromNear, toFar, false)
	d13 := geoutil.Haversine(fromFar, toFar, false)

	if d12 == 0 || d23 == 0 {
		return 0, nil
	}

	cosAngle := (d12*d12 + d23*d23 - d13*d13) / (2 * d12 * d23)
	cosAngle = math.Min(math.Max(cosAngle, -1), 1)

	return degrees(math.Acos(cosAngle)), nil
}

// nearFar returns the shared endpoint vertex (near) and the adjacent interior
// vertex one step back from it (far), for the endpoint a traversal departs
// from. When a segment has exactly 2 nodes there's no distinct interior
// vertex and far equals the opposite endpoint.
func nearFar(seg *domain.Segment, atEnd bool) (near, far geoutil.Point, ok bool) {
	n := len(seg.Polyline)
	if n < 2 {
		return geoutil.Point{}, geoutil.Point{}, false
	}

	if atEnd {
		return seg.Polyline[n-1], seg.Polyline[n-2], true
	}

	return seg.Polyline[0], seg.Polyline[1], true
}

func samePoint(a, b geoutil.Point) bool {
	const eps = 1e-9
	return math.Abs(a.Lat-b.Lat) < eps && math.Abs(a.Lon-b.Lon) < eps
}

// NeighborChoice pairs a successor key with its deviation (in degrees) from
// a straight-ahead continuation of the current segment.
type NeighborChoice struct {
	Key            domain.GraphKey
	AngleDeviation float64
}

// SelectNeighbors ranks candidate successors of "current" (departing via
// currentAtEnd) by how far their turn angle deviates from straight ahead.
// A lone neighbor skips the angle computation entirely, mirroring the
// original engine's short-circuit for unambiguous continuations.
func SelectNeighbors(current *domain.Segment, currentAtEnd bool, neighbors []domain.GraphKey, segmentsByPiece map[domain.PieceID]*domain.Segment) []NeighborChoice {
	if len(neighbors) == 0 {
		return nil
	}
	if len(neighbors) == 1 {
		return []NeighborChoice{{Key: neighbors[0], AngleDeviation: 0}}
	}

	out := make([]NeighborChoice, 0, len(neighbors))
	for _, nb := range neighbors {
		other := segmentsByPiece[nb.Piece]
		if other == nil {
			continue
		}

		angle, err := AngleBetween(current, currentAtEnd, other)
		if err != nil {
			continue
		}

		out = append(out, NeighborChoice{Key: nb, AngleDeviation: 90 - math.Abs(90-angle)})
	}

	return out
}
