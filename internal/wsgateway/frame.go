package wsgateway

import (
	"bytes"
	"compress/flate"
	"io"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

// Upgrader wraps a websocket.Upgrader with the gateway's buffer sizing.
type Upgrader struct {
	inner websocket.Upgrader
}

// NewUpgrader builds an Upgrader permitting any origin — the same trust
// boundary the teacher's HTTP front end already assumes for this
// same-origin API.
func NewUpgrader() *Upgrader {
	return &Upgrader{inner: websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     func(*http.Request) bool { return true },
	}}
}

// Upgrade promotes an HTTP request to a WebSocket connection.
func (u *Upgrader) Upgrade(w http.ResponseWriter, r *http.Request) (*websocket.Conn, error) {
	return u.inner.Upgrade(w, r, nil)
}

// EncodeFrame deflate-compresses (raw, no zlib header) the JSON encoding
// of v.
func EncodeFrame(v any) ([]byte, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(payload); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// DecodeFrame raw-inflates frame and unmarshals the result into v.
func DecodeFrame(frame []byte, v any) error {
	r := flate.NewReader(bytes.NewReader(frame))
	defer r.Close()

	payload, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	return json.Unmarshal(payload, v)
}

// ErrorFrame is the deflate-compressed response sent when request
// handling fails: the RepairError's Kind (for client-side status
// mapping) and a human-readable message.
type ErrorFrame struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}
