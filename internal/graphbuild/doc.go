// Package graphbuild turns a set of routable segments into the directed
// traversal graph the search package explores: one node per (segment,
// departure endpoint) pair, with successor edges to whatever segments share
// that endpoint's node and, for oneway segments, only in the allowed
// direction.
//
// Key features:
//   - BuildGraph: endpoint adjacency plus single-hop intersection id merging,
//     grounded on build_graph in the original route engine.
//   - AngleBetween: law-of-cosines turn angle between two segments that share
//     an endpoint node.
//   - SelectNeighbors: ranks successor candidates by deviation from a
//     straight-ahead turn (0 degrees == continue forward).
//
// Complexity:
//
//   - BuildGraph: O(segments + shared-endpoint edges).
//   - AngleBetween: O(1).
package graphbuild
