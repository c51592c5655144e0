package ordering

import (
	"math"
	"sort"

	"github.com/transitrepair/engine/internal/domain"
	"github.com/transitrepair/engine/internal/geoutil"
)

// OrderStops projects each stop collection's best coordinate onto idx,
// determines its side-of-travel relative to the owning segment's polyline,
// and returns entries sorted by sort index (nondecreasing — invariant 3).
func OrderStops(collections []domain.StopCollection, idx *SampleIndex, segmentsByPiece map[domain.PieceID]*domain.Segment) []domain.SortedStopEntry {
	entries := make([]domain.SortedStopEntry, 0, len(collections))

	for _, c := range collections {
		best := c.Best()
		if best == nil {
			continue
		}

		seg, sortIdx, distM, ok := idx.Nearest(best.At)
		if !ok {
			continue
		}

		entry := domain.SortedStopEntry{
			Collection:  c,
			NeighborSeg: seg,
			SortIndex:   sortIdx,
			DistanceM:   distM,
		}

		if segment, ok := segmentsByPiece[seg]; ok && len(segment.Polyline) >= 2 {
			a, hasPrev := idx.neighborVertices(sortIdx, segment.Polyline)
			if hasPrev {
				b := idx.samples[sortIdx].Point
				bDeg := geoutil.Point{Lat: b.Lat * 180 / math.Pi, Lon: b.Lon * 180 / math.Pi}
				switch geoutil.Side(a, bDeg, best.At) {
				case geoutil.Right:
					entry.Side = domain.SideRight
				case geoutil.Left:
					entry.Side = domain.SideLeft
				default:
					entry.Side = domain.SideUnset
				}
			}
		}

		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].SortIndex < entries[j].SortIndex })

	return entries
}
