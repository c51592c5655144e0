// Package changebuilder assembles the osmChange document that applies a
// finalized route: creating new ways for interior split fragments, updating
// the first fragment of each split way in place, rewriting any parent
// relation that referenced a way which got split, and replacing the target
// route relation's member list.
//
// Key features:
//   - ResolvePieces: assigns each split fragment either the original native
//     id (its first fragment, updated in place) or a fresh negative
//     placeholder id (later fragments, created as new ways) — the same
//     scheme build_osm_change uses for its element-id-to-unique-id mapping.
//   - Build: renders the full osmChange XML document via encoding/xml.
//
// Complexity: O(split fragments + parent relation members).
package changebuilder
