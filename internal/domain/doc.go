// Package domain holds the data model shared across every pipeline stage:
// Node, Segment (with composite piece identity), stop features and
// collections, graph keys/values, route members, grid cells, and download
// history. Every other internal package consumes these types; none of
// them are mutated once a request's arena is built (ownership note in
// SPEC_FULL.md §3: the change builder is the sole writer of mutation-shaped
// documents).
package domain
