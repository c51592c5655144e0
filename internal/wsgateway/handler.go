package wsgateway

import (
	"bytes"
	"compress/flate"
	"context"
	"errors"
	"io"

	"github.com/gorilla/websocket"

	"github.com/transitrepair/engine/internal/errs"
)

// Handler processes one decoded request payload and returns the response
// value to encode, or an error to translate into an ErrorFrame.
type Handler func(ctx context.Context, requestPayload []byte) (any, error)

// Handle runs the read-decode-dispatch-encode-write loop for one
// WebSocket connection until the peer disconnects or a read/write error
// occurs.
func Handle(ctx context.Context, conn *websocket.Conn, handle Handler) error {
	for {
		msgType, frame, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return err
		}
		if msgType != websocket.BinaryMessage {
			continue
		}

		r := flate.NewReader(bytes.NewReader(frame))
		payload, readErr := io.ReadAll(r)
		r.Close()
		if readErr != nil {
			if err := writeError(conn, errs.BadInput("malformed request frame")); err != nil {
				return err
			}
			continue
		}

		result, handleErr := handle(ctx, payload)
		if handleErr != nil {
			if err := writeError(conn, asRepairError(handleErr)); err != nil {
				return err
			}
			continue
		}

		out, err := EncodeFrame(result)
		if err != nil {
			return err
		}
		if err := conn.WriteMessage(websocket.BinaryMessage, out); err != nil {
			return err
		}
	}
}

func asRepairError(err error) *errs.RepairError {
	var repairErr *errs.RepairError
	if errors.As(err, &repairErr) {
		return repairErr
	}
	return errs.Internal(err.Error())
}

func writeError(conn *websocket.Conn, repairErr *errs.RepairError) error {
	frame, err := EncodeFrame(ErrorFrame{Kind: repairErr.Kind.String(), Message: repairErr.Error()})
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.BinaryMessage, frame)
}
