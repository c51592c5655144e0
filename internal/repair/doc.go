// Package repair wires every pipeline stage (ingest, cluster, ordering,
// graphbuild, search, finalize, members, changebuilder, warnings) into one
// entrypoint: given a fetched relation's raw network and candidate stops,
// produce a finalized route, its synthesized member list, the osmChange
// that applies it, and any warnings a reviewer should see before it's
// submitted. This is the engine cmd/transitrepair's serve and repair
// subcommands both call into.
//
// Key features:
//   - Request: the raw network plus the relation's existing state.
//   - Run: the full stage-by-stage pipeline, mirroring the order
//     web/main.py's calc_route view drives the same packages in.
//   - checkReachable: a cheap core.Graph/dfs connectivity pre-check that
//     rejects a request up front when no sequence of pieces could ever
//     connect its ends, before the bounded search spends its budget.
//
// Complexity: dominated by internal/search.Run; every other stage is
// linear or near-linear in network size.
package repair
