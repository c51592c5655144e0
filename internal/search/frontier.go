package search

import (
	"github.com/transitrepair/engine/internal/domain"
)

// intersectionSnapshot records, for one intersection id, the bus-stop
// coverage count at the last visit and how many times it has been
// re-entered since without new coverage.
type intersectionSnapshot struct {
	busStopsCount int
	visitCount    int
}

// frontier is one partially-built path on the search stack.
type frontier struct {
	path                 []domain.GraphKey
	visitedStops         map[domain.NativeID]int
	almostVisitedStops   map[domain.NativeID]int
	intersectionSnapshot map[int]intersectionSnapshot
	length               float64
	completePath         map[domain.PieceID]struct{}
	completeLength       float64
	angleSum             float64
	loopLength           float64
	afterFinishLength    float64
	roundaboutEnter      *domain.GraphKey
}

// BestPath is a snapshot of the best path found so far along one of the two
// "valid" (reaches the end segment) / "invalid" (doesn't, yet) tracks.
type BestPath struct {
	Path                []domain.GraphKey
	VisitedStops        map[domain.NativeID]int
	BusStopsCount       int
	AlmostBusStopsCount int
	Length              float64
	CompletePath        map[domain.PieceID]struct{}
	CompleteLength      float64
	AngleSum            float64
}

func zeroBestPath() BestPath {
	return BestPath{
		VisitedStops: map[domain.NativeID]int{},
		CompletePath: map[domain.PieceID]struct{}{},
	}
}

// selectBest picks the better of b and other using the original engine's
// priority order: overall completeness first, then a length/stop-count
// trade-off within MaxExtraDistanceToConvertM, then raw stop counts, then
// shorter length, then simpler turn angles.
func (b BestPath) selectBest(other BestPath, maxExtraDistanceToConvert float64) BestPath {
	completeLengthDiff := other.CompleteLength - b.CompleteLength
	if absf(completeLengthDiff) < 0.1 {
		completeLengthDiff = 0
	}
	if completeLengthDiff > 0 {
		return other
	}
	if completeLengthDiff < 0 {
		return b
	}

	lengthDiff := other.Length - b.Length
	if absf(lengthDiff) < 0.1 {
		lengthDiff = 0
	}

	busStopsDiff := other.BusStopsCount - b.BusStopsCount
	almostDiff := other.AlmostBusStopsCount - b.AlmostBusStopsCount

	if busStopsDiff != 0 && busStopsDiff+almostDiff == 0 {
		maxConvert := maxExtraDistanceToConvert * float64(busStopsDiff)
		if lengthDiff < maxConvert && maxConvert < 0 {
			return other
		}
		if 0 < maxConvert && maxConvert < lengthDiff {
			return b
		}
	}

	if busStopsDiff > 0 {
		return other
	}
	if busStopsDiff < 0 {
		return b
	}

	if almostDiff > 0 {
		return other
	}
	if almostDiff < 0 {
		return b
	}

	if lengthDiff < 0 {
		return other
	}
	if lengthDiff > 0 {
		return b
	}

	if b.AngleSum > other.AngleSum {
		return other
	}
	if b.AngleSum < other.AngleSum {
		return b
	}

	return b
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// bestPathPair tracks the best path that reaches the end segment (valid) and
// the best path that doesn't, yet (invalid), so the search always has a
// fallback result even when the end segment proves unreachable.
type bestPathPair struct {
	invalid BestPath
	valid   BestPath
}

func (p bestPathPair) merge(other bestPathPair, maxExtraDistanceToConvert float64) bestPathPair {
	return bestPathPair{
		invalid: p.invalid.selectBest(other.invalid, maxExtraDistanceToConvert),
		valid:   p.valid.selectBest(other.valid, maxExtraDistanceToConvert),
	}
}

func stopsAt(key domain.GraphKey, stopsByPiece map[domain.PieceID][]domain.SortedStopEntry) (visited, almost []domain.SortedStopEntry) {
	forward := !key.AtEnd
	for _, entry := range stopsByPiece[key.Piece] {
		switch entry.Side {
		case domain.SideUnset:
			visited = append(visited, entry)
		case domain.SideRight:
			if forward {
				visited = append(visited, entry)
			} else {
				almost = append(almost, entry)
			}
		case domain.SideLeft:
			if !forward {
				visited = append(visited, entry)
			} else {
				almost = append(almost, entry)
			}
		}
	}

	if !forward {
		reverseEntries(visited)
		reverseEntries(almost)
	}

	return visited, almost
}

func reverseEntries(s []domain.SortedStopEntry) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func initFrontier(key domain.GraphKey, graph map[domain.GraphKey]domain.GraphValue, segmentsByPiece map[domain.PieceID]*domain.Segment, stopsByPiece map[domain.PieceID][]domain.SortedStopEntry) frontier {
	visited, almost := stopsAt(key, stopsByPiece)
	visitedStops := map[domain.NativeID]int{}
	almostStops := map[domain.NativeID]int{}
	for _, e := range visited {
		visitedStops[e.Collection.Best().ID] = 1
	}
	for _, e := range almost {
		almostStops[e.Collection.Best().ID] = 1
	}

	seg := segmentsByPiece[key.Piece]
	snapshot := map[int]intersectionSnapshot{
		graph[key].IntersectionID: {busStopsCount: len(visited) + len(almost), visitCount: 1},
	}

	return frontier{
		path:                 []domain.GraphKey{key},
		visitedStops:         visitedStops,
		almostVisitedStops:   almostStops,
		intersectionSnapshot: snapshot,
		length:               seg.LengthM,
		completePath:         map[domain.PieceID]struct{}{key.Piece: {}},
		completeLength:       seg.LengthM,
	}
}

func mergeStopMaps(a, b map[domain.NativeID]int) map[domain.NativeID]int {
	out := make(map[domain.NativeID]int, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

func copyStopMap(m map[domain.NativeID]int) map[domain.NativeID]int {
	out := make(map[domain.NativeID]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyPieceSet(m map[domain.PieceID]struct{}) map[domain.PieceID]struct{} {
	out := make(map[domain.PieceID]struct{}, len(m)+1)
	for k := range m {
		out[k] = struct{}{}
	}
	return out
}

func copySnapshot(m map[int]intersectionSnapshot) map[int]intersectionSnapshot {
	out := make(map[int]intersectionSnapshot, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}
