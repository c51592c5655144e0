// Package osmapi is the OAuth-authenticated client for the OpenStreetMap
// edit API: fetching the authenticated user's profile, and the
// open-changeset / upload-diff / close-changeset sequence a repair
// submission goes through. Transport is fasthttp with goccy/go-json for
// the JSON user-details response, matching the teacher's HTTP-client
// conventions; the changeset lifecycle itself speaks the API's native
// XML, built with stdlib encoding/xml the same way internal/changebuilder
// does.
//
// Key features:
//   - Client: bearer-token-authenticated HTTP client bound to one API
//     base URL.
//   - AuthorizedUser: GET /api/0.6/user/details.json.
//   - Upload: open a changeset, substitute the osmChange document's
//     placeholder with the real changeset id, upload the diff, and close
//     the changeset — mirroring upload_osm_change.
//
// Complexity: O(1) network round trips per call; no data-structure work
// beyond XML/JSON encode-decode.
package osmapi
