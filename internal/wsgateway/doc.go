// Package wsgateway exposes the route-repair pipeline over a single
// WebSocket connection per client: each inbound frame is a
// deflate-compressed JSON request, each outbound frame a
// deflate-compressed JSON response (or an error frame carrying a
// RepairError's Kind), matching the deflate-over-JSON framing
// deflate_middleware.py applies at the HTTP layer.
//
// Key features:
//   - Upgrader: wraps gorilla/websocket's upgrade handshake.
//   - DecodeFrame/EncodeFrame: raw-deflate (no zlib header) compress and
//     decompress around a JSON payload, via stdlib compress/flate.
//   - Handle: the per-connection read-decode-run-encode-write loop.
//
// Complexity: O(payload size) per frame; Handle blocks for the duration
// of one connection.
package wsgateway
