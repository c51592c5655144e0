package graphbuild

import (
	"github.com/transitrepair/engine/internal/domain"
)

// endpointRef names one physical node as the endpoint of one segment.
type endpointRef struct {
	piece domain.PieceID
	atEnd bool
}

// BuildGraph indexes segments by their endpoint nodes, derives the successor
// set reachable from each (segment, departure-endpoint) key, and assigns
// intersection ids so the search package can detect repeated visits to the
// same physical junction.
//
// A GraphKey{Piece, AtEnd: false} departs from the segment's start node and
// its successors are the segments reachable AT the segment's start node
// (i.e. the ones you could have arrived from); GraphKey{Piece, AtEnd: true}
// is the symmetric case at the end node. Oneway segments only contribute a
// successor when approached via their own start node.
func BuildGraph(segments []*domain.Segment) map[domain.GraphKey]domain.GraphValue {
	byPiece := make(map[domain.PieceID]*domain.Segment, len(segments))
	byNode := make(map[domain.NativeID][]endpointRef)

	for _, seg := range segments {
		if len(seg.NodeIDs) < 2 {
			continue
		}
		byPiece[seg.Piece] = seg

		start, end := seg.NodeIDs[0], seg.NodeIDs[len(seg.NodeIDs)-1]
		byNode[start] = append(byNode[start], endpointRef{seg.Piece, false})
		byNode[end] = append(byNode[end], endpointRef{seg.Piece, true})
	}

	neighborsAt := func(node domain.NativeID, self domain.PieceID) []domain.GraphKey {
		var out []domain.GraphKey
		for _, ref := range byNode[node] {
			if ref.piece == self {
				continue
			}
			seg := byPiece[ref.piece]
			if !ref.atEnd {
				// neighbor connects via its own start: entering it departs forward.
				out = append(out, domain.GraphKey{Piece: ref.piece, AtEnd: false})
			} else if !seg.Oneway {
				// neighbor connects via its own end; only usable in reverse if not oneway.
				out = append(out, domain.GraphKey{Piece: ref.piece, AtEnd: true})
			}
		}

		return out
	}

	neighbors := make(map[domain.GraphKey][]domain.GraphKey)
	for _, seg := range segments {
		if len(seg.NodeIDs) < 2 {
			continue
		}
		start, end := seg.NodeIDs[0], seg.NodeIDs[len(seg.NodeIDs)-1]
		neighbors[domain.GraphKey{Piece: seg.Piece, AtEnd: false}] = neighborsAt(start, seg.Piece)
		neighbors[domain.GraphKey{Piece: seg.Piece, AtEnd: true}] = neighborsAt(end, seg.Piece)
	}

	remaining := make(map[domain.GraphKey]struct{}, len(neighbors))
	for k := range neighbors {
		remaining[k] = struct{}{}
	}

	result := make(map[domain.GraphKey]domain.GraphValue, len(neighbors))
	intersectionNum := -1

	for len(remaining) > 0 {
		intersectionNum++

		var key domain.GraphKey
		for k := range remaining {
			key = k
			break
		}
		delete(remaining, key)

		succ := neighbors[key]
		result[key] = domain.GraphValue{IntersectionID: intersectionNum, Successors: succ}

		for _, nb := range succ {
			if _, ok := remaining[nb]; ok {
				delete(remaining, nb)
				result[nb] = domain.GraphValue{IntersectionID: intersectionNum, Successors: neighbors[nb]}
			} else if v, ok := result[nb]; ok {
				// already converted under a different root; an asymmetric
				// (oneway) edge means it belongs to this intersection too.
				v.IntersectionID = intersectionNum
				result[nb] = v
			}
		}
	}

	return result
}
