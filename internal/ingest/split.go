package ingest

import (
	"github.com/transitrepair/engine/internal/domain"
	"github.com/transitrepair/engine/internal/geoutil"
)

// RawWay is an ingested way before splitting: native id, node sequence, tags.
type RawWay struct {
	ID      domain.NativeID
	NodeIDs []domain.NativeID
	Tags    map[string]string
}

// SplitResult is the output of Split: the composite-id segment map, the
// adjacency map (piece id -> set of piece ids sharing a node), and the
// native-id -> ordered piece list map.
type SplitResult struct {
	Segments  map[domain.PieceID]*domain.Segment
	Adjacency map[domain.PieceID]map[domain.PieceID]struct{}
	ByNative  map[domain.NativeID][]domain.PieceID
}

// nodeOccurrences counts, across the full ingested set, how many ways
// reference each node id.
func nodeOccurrences(ways []RawWay) map[domain.NativeID]int {
	counts := make(map[domain.NativeID]int)
	for _, w := range ways {
		for _, n := range w.NodeIDs {
			counts[n]++
		}
	}

	return counts
}

// splitOnIntersections partitions a single way's node list at every node
// referenced by >= 2 ways, matching the source's sliding-window algorithm:
// a split point is emitted whenever the running segment reaches an
// intersection node and already has length > 1.
func splitOnIntersections(nodeIDs []domain.NativeID, counts map[domain.NativeID]int) [][]domain.NativeID {
	var segments [][]domain.NativeID
	var current []domain.NativeID

	for _, n := range nodeIDs {
		current = append(current, n)
		if counts[n] > 1 && len(current) > 1 {
			segments = append(segments, current)
			current = []domain.NativeID{n}
		}
	}
	if len(current) > 1 {
		segments = append(segments, current)
	}

	return segments
}

// Split ingests raw ways: filters routable ones, classifies oneway/
// roundabout, splits at shared intersection nodes, and builds the
// adjacency map between resulting pieces. turnInPlace marks node ids
// known to be turning circles (kept for downstream TurnInPlaceEnd tagging).
func Split(ways []RawWay, mode Mode, nodes map[domain.NativeID]domain.Node, turnInPlace map[domain.NativeID]bool) SplitResult {
	result := SplitResult{
		Segments:  make(map[domain.PieceID]*domain.Segment),
		Adjacency: make(map[domain.PieceID]map[domain.PieceID]struct{}),
		ByNative:  make(map[domain.NativeID][]domain.PieceID),
	}

	routable := make([]RawWay, 0, len(ways))
	for _, w := range ways {
		if IsRoutable(w.Tags, mode) {
			routable = append(routable, w)
		}
	}

	counts := nodeOccurrences(routable)
	nodeToPieces := make(map[domain.NativeID]map[domain.PieceID]struct{})

	for _, w := range routable {
		pieces := splitOnIntersections(w.NodeIDs, counts)
		oneway, roundabout := Classify(w.Tags)

		for idx, nodeSeq := range pieces {
			var pid domain.PieceID
			if len(pieces) > 1 {
				pid = domain.PieceID{Native: w.ID, K: idx + 1, N: len(pieces)}
			} else {
				pid = domain.PieceID{Native: w.ID}
			}

			seg := &domain.Segment{
				Piece:      pid,
				NodeIDs:    nodeSeq,
				Tags:       w.Tags,
				Oneway:     oneway,
				Roundabout: roundabout,
			}
			seg.TurnInPlaceEnd[0] = turnInPlace[nodeSeq[0]]
			seg.TurnInPlaceEnd[1] = turnInPlace[nodeSeq[len(nodeSeq)-1]]

			polyline := make([]geoutil.Point, 0, len(nodeSeq))
			for _, nid := range nodeSeq {
				if n, ok := nodes[nid]; ok {
					polyline = append(polyline, n.At)
				}
			}
			seg.Polyline = polyline
			seg.LengthM = geoutil.PolylineLength(polyline)
			seg.Midpoint = geoutil.Midpoint(polyline)

			result.Segments[pid] = seg
			result.ByNative[w.ID] = append(result.ByNative[w.ID], pid)
			result.Adjacency[pid] = make(map[domain.PieceID]struct{})

			for _, n := range nodeSeq {
				if counts[n] <= 1 {
					continue
				}
				if nodeToPieces[n] == nil {
					nodeToPieces[n] = make(map[domain.PieceID]struct{})
				}
				for other := range nodeToPieces[n] {
					result.Adjacency[pid][other] = struct{}{}
					if result.Adjacency[other] == nil {
						result.Adjacency[other] = make(map[domain.PieceID]struct{})
					}
					result.Adjacency[other][pid] = struct{}{}
				}
				nodeToPieces[n][pid] = struct{}{}
			}
		}
	}

	return result
}
