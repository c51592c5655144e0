// Package overpass builds and executes the Overpass API queries the
// engine needs: a relation's member way ids, the bus/tram network and
// stop features within a set of grid cells, and the parent relations of a
// way about to be split. Queries are plain strings assembled the same way
// the teacher builds them; responses are JSON decoded with goccy/go-json
// for the bulk element payloads and XML decoded with encoding/xml for the
// (Overpass-native) [out:xml] parents query.
//
// Key features:
//   - Client: a pooled fasthttp.Client wrapper with the Overpass
//     interpreter base URL and user agent baked in.
//   - BuildWaysQuery/BuildBusAreaQuery/BuildParentsQuery: query string
//     builders.
//   - SplitByCount: separates an `out count` punctuated element stream
//     into its logical sections.
//
// Complexity: query builders are O(len(bounding boxes)); SplitByCount and
// decoding are O(len(elements)).
package overpass
