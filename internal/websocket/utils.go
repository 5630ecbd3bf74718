package websocket

import (
	"time"

	"github.com/gorilla/websocket"
)

const (
	// writeWait bounds how long a single outbound frame may take; a monitor
	// client that stops draining gets disconnected instead of blocking the
	// feed.
	writeWait = 10 * time.Second

	// readWait is the idle window between inbound frames. Clients keep the
	// connection alive by pinging within it.
	readWait = 5 * time.Minute
)

// WriteTyped sends a typed payload as a JSON frame under the write deadline.
func WriteTyped(conn *websocket.Conn, v interface{}) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(v)
}

// WriteError sends an ErrorResponse frame.
func WriteError(conn *websocket.Conn, errMsg string) error {
	return WriteTyped(conn, ErrorResponse{
		Event: EventError,
		Error: errMsg,
	})
}

// ReadJSON decodes the next inbound frame into v, refreshing the read
// deadline first.
func ReadJSON(conn *websocket.Conn, v interface{}) error {
	conn.SetReadDeadline(time.Now().Add(readWait))
	return conn.ReadJSON(v)
}
