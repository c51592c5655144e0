// Package cluster groups candidate stop features into coherent stop
// collections: area grouping by proximity, name-group formation and fuzzy
// expansion, and platform<->stop pairing by explicit/implicit preference
// and nearest-neighbor or rectangular assignment.
//
// Key features:
//   - NormalizeGroupName: lowercase, strip punctuation, zero-pad numbers,
//     collapse whitespace.
//   - AreaComponents: union-find grouping of features within a search
//     radius, pruned by a tidwall/rtree range query per feature rather
//     than a full pairwise scan (see DESIGN.md's "ordering/cluster nearest
//     neighbor" entry).
//   - ExpandGroups: fuzzy token-set merge of short-name into long-name
//     groups, guarded by disjoint public-transport kinds.
//   - BuildCollections: explicit-over-implicit platform/stop preference,
//     then rectangular (Hungarian, hungarian.go) or nearest-neighbor
//     pairing.
//
// Complexity:
//
//   - AreaComponents: O(n log n) expected (one rtree range query per
//     feature) plus O(matches) haversine confirmations.
//   - ExpandGroups: O(g^2) in group count per area component.
//   - BuildCollections: O(p*s) per name group for distance matrix build,
//     O(p^3) for the Hungarian solve in the worst case.
package cluster
