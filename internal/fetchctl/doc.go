// Package fetchctl manages the lat/lon grid a relation's surrounding
// road network is fetched in tiles of: converting points to grid cells,
// merging adjacent cells into the fewest bounding boxes an Overpass query
// needs, and deciding which additional cells a reroute's new geometry
// requires before the next fetch round.
//
// Key features:
//   - ToGridCell / FromGridCell: point <-> cell coordinate mapping at a
//     configurable cell size.
//   - OptimizeCells: merges a cell set into a minimal bounding-box cover,
//     two-pass horizontal-then-vertical (or vice versa), picking whichever
//     pass direction yields fewer boxes.
//   - BoundsIndex: an rtree-backed containment index over already-covered
//     bounding boxes.
//   - DownloadTriggers: finds, for each way, the grid cells its geometry
//     touches that aren't covered yet.
//
// Complexity: OptimizeCells is O(n log n) in cell count; DownloadTriggers
// is O(total way vertices) per containment check.
package fetchctl
