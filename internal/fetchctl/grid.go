package fetchctl

import (
	"math"
	"sort"

	"github.com/transitrepair/engine/internal/geoutil"
)

// Cell is one grid tile coordinate.
type Cell struct {
	X, Y int
}

// BoundingBox is a lat/lon rectangle.
type BoundingBox struct {
	MinLat, MinLon, MaxLat, MaxLon float64
}

// ToGridCell maps a point to its containing cell at the given cell size
// (degrees).
func ToGridCell(p geoutil.Point, cellSize float64) Cell {
	return Cell{X: int(math.Floor(p.Lon / cellSize)), Y: int(math.Floor(p.Lat / cellSize))}
}

// FromGridCell expands a (possibly merged, x..xMax by y..yMax) cell range
// back into its bounding box.
func FromGridCell(x, y, xMax, yMax int, cellSize float64) BoundingBox {
	return BoundingBox{
		MinLat: float64(y) * cellSize,
		MinLon: float64(x) * cellSize,
		MaxLat: float64(yMax+1) * cellSize,
		MaxLon: float64(xMax+1) * cellSize,
	}
}

// Extend grows bb by deltaDegrees on every side.
func (bb BoundingBox) Extend(deltaDegrees float64) BoundingBox {
	return BoundingBox{
		MinLat: bb.MinLat - deltaDegrees,
		MinLon: bb.MinLon - deltaDegrees,
		MaxLat: bb.MaxLat + deltaDegrees,
		MaxLon: bb.MaxLon + deltaDegrees,
	}
}

// GridCells returns every cell bb spans, expanded by expand cells on every
// side (expand=1 yields the surrounding 3x3 block).
func GridCells(bb BoundingBox, cellSize float64, expand int) map[Cell]struct{} {
	minX := int(math.Floor(bb.MinLon/cellSize)) - expand
	minY := int(math.Floor(bb.MinLat/cellSize)) - expand
	maxX := int(math.Floor(bb.MaxLon/cellSize)) + expand
	maxY := int(math.Floor(bb.MaxLat/cellSize)) + expand

	out := make(map[Cell]struct{}, (maxX-minX+1)*(maxY-minY+1))
	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			out[Cell{X: x, Y: y}] = struct{}{}
		}
	}

	return out
}

type cellBounds struct{ x0, y0, x1, y1 int }

func mergeRuns(sorted []cellBounds) []cellBounds {
	if len(sorted) == 0 {
		return nil
	}

	result := make([]cellBounds, 0, len(sorted))
	current := sorted[0]

	for _, next := range sorted[1:] {
		switch {
		case current.x1+1 == next.x0 && current.y0 == next.y0 && current.y1 == next.y1:
			current.x1 = next.x1
		case current.y1+1 == next.y0 && current.x0 == next.x0 && current.x1 == next.x1:
			current.y1 = next.y1
		default:
			result = append(result, current)
			current = next
		}
	}
	result = append(result, current)

	return result
}

// OptimizeCells merges cells into the fewest bounding boxes covering them,
// trying a horizontal-first and vertical-first merge pass and keeping
// whichever produced fewer boxes, mirroring optimize_cells_and_get_bbs.
// Returns the tight boxes and the same boxes expanded by expandDegrees
// (the area Overpass should additionally search for nearby stops).
func OptimizeCells(cells []Cell, cellSize, expandDegrees float64) (bbs, bbsExpanded []BoundingBox) {
	if len(cells) == 0 {
		return nil, nil
	}

	horizontal := optimizePass(cells, true)
	vertical := optimizePass(cells, false)

	chosen := horizontal
	if len(vertical) < len(horizontal) {
		chosen = vertical
	}

	bbs = make([]BoundingBox, 0, len(chosen))
	bbsExpanded = make([]BoundingBox, 0, len(chosen))
	for _, c := range chosen {
		bb := FromGridCell(c.x0, c.y0, c.x1, c.y1, cellSize)
		bbs = append(bbs, bb)
		bbsExpanded = append(bbsExpanded, bb.Extend(expandDegrees))
	}

	return bbs, bbsExpanded
}

func optimizePass(cells []Cell, startHorizontal bool) []cellBounds {
	bounds := make([]cellBounds, len(cells))
	for i, c := range cells {
		bounds[i] = cellBounds{x0: c.X, y0: c.Y, x1: c.X, y1: c.Y}
	}

	sortBy(bounds, startHorizontal)
	bounds = mergeRuns(bounds)
	sortBy(bounds, !startHorizontal)
	bounds = mergeRuns(bounds)

	return bounds
}

func sortBy(bounds []cellBounds, byYThenX bool) {
	sort.Slice(bounds, func(i, j int) bool {
		a, b := bounds[i], bounds[j]
		if byYThenX {
			if a.y0 != b.y0 {
				return a.y0 < b.y0
			}
			return a.x0 < b.x0
		}
		if a.x0 != b.x0 {
			return a.x0 < b.x0
		}
		return a.y0 < b.y0
	})
}
