// Package members synthesizes a route relation's member list from a
// finalized route: stop/platform members with entry/exit-only role
// suffixes, way members in traversal order, and unsplit-piece merging so a
// way that the ingest stage split on an interior intersection doesn't show
// up as several members once it's wholly included in the final route.
//
// Key features:
//   - SimplifyPieceIDs: merges a run of consecutive split pieces (1..N of
//     the same native way, in order) back into one native id, mirroring
//     _simplify_way_ids.
//   - Synthesize: builds the full ordered member list, preserving any
//     more-specific role an existing relation member already carries.
//
// Complexity: O(len(route.Stops) + len(route.Legs)).
package members
