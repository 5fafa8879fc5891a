package peer

import (
	"time"

	"github.com/gorilla/websocket"
)

// writeWait is the time allowed to write a message to the remote node. A node
// that stops reading must not hold up broadcasts to everyone else.
const writeWait = 10 * time.Second

// webSocket adapts a gorilla websocket connection to the Channel interface.
type webSocket struct {
	conn      *websocket.Conn
	writeWait time.Duration
}

// NewWebSocket constructs a Channel over an established websocket connection.
func NewWebSocket(conn *websocket.Conn) Channel {
	return &webSocket{
		conn:      conn,
		writeWait: writeWait,
	}
}

// ReadMessage blocks until the next data message arrives. Control frames are
// handled by the websocket package.
func (ws *webSocket) ReadMessage() ([]byte, error) {
	for {
		mt, data, err := ws.conn.ReadMessage()
		if err != nil {
			return nil, err
		}

		if mt == websocket.TextMessage || mt == websocket.BinaryMessage {
			return data, nil
		}
	}
}

// WriteMessage sends the data as a text message. The write fails if the
// remote node doesn't accept it within the write deadline.
func (ws *webSocket) WriteMessage(data []byte) error {
	if err := ws.conn.SetWriteDeadline(time.Now().Add(ws.writeWait)); err != nil {
		return err
	}

	return ws.conn.WriteMessage(websocket.TextMessage, data)
}

// RemoteAddr returns the address of the remote node.
func (ws *webSocket) RemoteAddr() string {
	return ws.conn.RemoteAddr().String()
}

// Close closes the websocket connection.
func (ws *webSocket) Close() error {
	return ws.conn.Close()
}
