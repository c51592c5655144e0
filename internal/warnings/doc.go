// Package warnings flags conditions in a finalized route that a human
// reviewer should look at before submitting it: unused ways, an
// unreachable requested endpoint, stops sitting far from the route,
// stops the route skipped entirely, too few stops to be a real route, a
// roundtrip whose ends don't meet, and the degenerate case where nothing
// about the relation actually changed.
//
// Key features:
//   - Check: runs every rule against a finalize.Route and returns the
//     triggered ones ordered most-severe first.
//
// Complexity: O(len(route.Legs) + len(route.Stops) + len(candidateStops)).
package warnings
