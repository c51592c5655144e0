package fetchctl

import (
	"sort"

	"github.com/google/uuid"
	"github.com/tidwall/rtree"

	"github.com/transitrepair/engine/internal/domain"
	"github.com/transitrepair/engine/internal/geoutil"
)

// BoundsIndex answers point-in-any-box queries over a set of bounding
// boxes, backed by an rtree so a large download history doesn't require a
// linear scan per query.
type BoundsIndex struct {
	tree rtree.RTreeG[BoundingBox]
}

// NewBoundsIndex builds a BoundsIndex over bbs.
func NewBoundsIndex(bbs []BoundingBox) *BoundsIndex {
	idx := &BoundsIndex{}
	for _, bb := range bbs {
		idx.tree.Insert([2]float64{bb.MinLon, bb.MinLat}, [2]float64{bb.MaxLon, bb.MaxLat}, bb)
	}

	return idx
}

// Contains reports whether p falls within any indexed bounding box.
func (idx *BoundsIndex) Contains(p geoutil.Point) bool {
	found := false
	idx.tree.Search(
		[2]float64{p.Lon, p.Lat}, [2]float64{p.Lon, p.Lat},
		func(min, max [2]float64, bb BoundingBox) bool {
			found = true
			return false // stop at first hit
		},
	)

	return found
}

// DownloadTriggers finds, for each way, the cells its polyline touches
// that fall outside the already-downloaded area and weren't already
// fetched in a previous round — signalling which cells the next fetch
// round must cover.
func DownloadTriggers(covered *BoundsIndex, alreadyFetched []Cell, ways map[domain.NativeID][]geoutil.Point, cellSize float64) map[domain.NativeID][]Cell {
	fetchedSet := make(map[Cell]struct{}, len(alreadyFetched))
	for _, c := range alreadyFetched {
		fetchedSet[c] = struct{}{}
	}

	result := make(map[domain.NativeID][]Cell)

	for wayID, points := range ways {
		newCells := make(map[Cell]struct{})

		for _, p := range points {
			if covered.Contains(p) {
				continue
			}

			pointBox := BoundingBox{MinLat: p.Lat, MinLon: p.Lon, MaxLat: p.Lat, MaxLon: p.Lon}
			for c := range GridCells(pointBox, cellSize, 1) {
				if _, already := fetchedSet[c]; !already {
					newCells[c] = struct{}{}
				}
			}
		}

		if len(newCells) == 0 {
			continue
		}

		cells := make([]Cell, 0, len(newCells))
		for c := range newCells {
			cells = append(cells, c)
		}
		sort.Slice(cells, func(i, j int) bool {
			if cells[i].X != cells[j].X {
				return cells[i].X < cells[j].X
			}
			return cells[i].Y < cells[j].Y
		})

		result[wayID] = cells
	}

	return result
}

// DownloadHistory tracks the cell sets fetched across successive rounds
// for one relation's repair session, keyed by a random session token so
// concurrent repair sessions don't share fetch state.
type DownloadHistory struct {
	Session string
	Rounds  [][]Cell
}

// NewSession mints a fresh session token for a download history, the way
// DownloadHistory.make_session does.
func NewSession() string {
	return uuid.NewString()
}

// AllCells flattens every round's cells into one slice.
func (h DownloadHistory) AllCells() []Cell {
	var out []Cell
	for _, round := range h.Rounds {
		out = append(out, round...)
	}
	return out
}
