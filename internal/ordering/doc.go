// Package ordering projects stop collections onto the interpolated segment
// network and orders them by traversal position, determining which side of
// travel each stop sits on.
//
// Key features:
//   - BuildSampleIndex: interpolates every segment's polyline to 60m
//     resolution and indexes the samples in a tidwall/rtree for
//     nearest-neighbor lookups.
//   - Nearest: expanding-ring nearest-neighbor query over the rtree (a
//     haversine ball-tree stand-in — see DESIGN.md's "ordering/cluster
//     nearest neighbor" entry for why a literal ball-tree library isn't
//     used), falling back to a full scan only if the ring grows past a
//     fixed 20-degree radius without confirming a winner.
//   - SideOfTravel: right/left/unset via internal/geoutil.Side.
//
// Complexity:
//
//   - BuildSampleIndex: O(total interpolated samples log samples).
//   - Nearest: O(log samples) expected per query via expanding rtree rings.
package ordering
