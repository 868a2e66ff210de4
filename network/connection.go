package network

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Connection wraps the WebSocket connection with a buffered outbound queue.
type Connection struct {
	ws   *websocket.Conn
	send chan []byte
	log  zerolog.Logger
}

// MessageHandler receives decoded frames from the read pump.
type MessageHandler interface {
	HandleMessage(conn *Connection, message []byte)
}

// NewConnection creates a new connection wrapper.
func NewConnection(ws *websocket.Conn, log zerolog.Logger) *Connection {
	return &Connection{
		ws:   ws,
		send: make(chan []byte, 256),
		log:  log,
	}
}

// ReadPump reads messages from the WebSocket connection until it closes.
func (c *Connection) ReadPump(h MessageHandler) {
	defer c.ws.Close()

	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.Warn().Err(err).Msg("websocket read failed")
			}
			break
		}
		h.HandleMessage(c, message)
	}
}

// WritePump drains the send queue onto the wire and keeps the connection
// alive with periodic pings.
func (c *Connection) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendMessage queues a message for delivery. A client that cannot keep up
// with its queue is dropped rather than allowed to stall the server.
func (c *Connection) SendMessage(msg interface{}) error {
	messageBytes, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	select {
	case c.send <- messageBytes:
	default:
		c.log.Warn().Msg("send queue full, closing connection")
		c.ws.Close()
	}
	return nil
}
