// Package search explores the directed graph built by internal/graphbuild to
// find the best path between a route's start and end segments, subject to
// the length, loop, and roundabout-looping bounds a real route repair must
// respect.
//
// The search is an iterative, stack-based depth-first traversal (not
// recursive, so very long routes don't blow the Go call stack) distributed
// across a worker pool once an initial single-threaded warmup has run long
// enough to produce a useful incumbent. This mirrors the original engine's
// synchronous-warmup-then-process-pool structure, adapted to goroutines: a
// dedicated engine struct holds all search state, following the same shape
// as the teacher's branch-and-bound engine.
//
// Key features:
//   - Run: the top-level search entrypoint.
//   - BestPath.selectBest: the multi-criterion comparator (complete length,
//     then the stop-count/length trade-off, bus-stop count, almost-visited
//     stop count, path length, and angle sum) ported verbatim from the
//     original route engine.
//
// Complexity: exponential worst case (exact search over the graph), bounded
// in practice by MaxPathLengthFactor, the loop-length cap, and the
// roundabout re-entry cap.
package search
