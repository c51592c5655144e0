// Package ingest classifies raw fetched ways as routable, determines
// oneway/roundabout semantics, and splits ways at shared intersection
// nodes into composite-id pieces with an adjacency map.
//
// Key features:
//   - IsRoutable(tags, mode): the bus/tram routability filter.
//   - Classify(tags): oneway and roundabout derived flags.
//   - Split(raw, mode): node-occurrence counting, per-way splitting,
//     composite id assignment, adjacency-map construction.
//
// Complexity:
//
//   - IsRoutable/Classify: O(1) per way.
//   - Split: O(total nodes across all ways).
package ingest
