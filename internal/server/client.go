package server

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/anchal00/farkle/internal/logger"
	"github.com/anchal00/farkle/parser"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096

	// CloseAuthFailed is the close code sent when a credential is rejected.
	CloseAuthFailed = 4401
	authClosePrefix = "auth_error:"
)

var (
	errConnClosed     = errors.New("connection closed")
	errSendBufferFull = errors.New("send buffer full")
)

// client is one websocket connection. Rooms write to it through Send, which
// never blocks; writePump is the only writer on the socket.
type client struct {
	id     string
	ws     *websocket.Conn
	send   chan parser.Event
	done   chan struct{}
	once   sync.Once
	Logger logger.Logger

	// set once, before done is closed
	closeCode   int
	closeReason string
}

func newClient(ws *websocket.Conn, buffer int, log logger.Logger) *client {
	id := uuid.NewString()
	return &client{
		id:     id,
		ws:     ws,
		send:   make(chan parser.Event, buffer),
		done:   make(chan struct{}),
		Logger: log.With("conn", id),
	}
}

func (c *client) ID() string {
	return c.id
}

func (c *client) Send(event parser.Event) error {
	select {
	case <-c.done:
		return errConnClosed
	default:
	}
	select {
	case c.send <- event:
		return nil
	default:
		c.Close("slow consumer")
		return errSendBufferFull
	}
}

// Close asks the write pump to flush queued events, send a close frame and
// drop the socket. Only the first reason is kept.
func (c *client) Close(reason string) {
	c.once.Do(func() {
		c.closeCode = closeCodeFor(reason)
		c.closeReason = reason
		close(c.done)
	})
}

func closeCodeFor(reason string) int {
	if strings.HasPrefix(reason, authClosePrefix) {
		return CloseAuthFailed
	}
	switch reason {
	case "slow consumer":
		return websocket.ClosePolicyViolation
	case "degraded":
		return websocket.CloseInternalServerErr
	case "shutdown":
		return websocket.CloseGoingAway
	}
	return websocket.CloseNormalClosure
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
	}()
	for {
		select {
		case event := <-c.send:
			if err := c.write(event); err != nil {
				c.Logger.Debug("Write failed: " + err.Error())
				c.Close("write failed")
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.Close("write failed")
				return
			}
		case <-c.done:
			c.flush()
			message := websocket.FormatCloseMessage(c.closeCode, c.closeReason)
			_ = c.ws.WriteControl(websocket.CloseMessage, message, time.Now().Add(writeWait))
			return
		}
	}
}

func (c *client) flush() {
	for {
		select {
		case event := <-c.send:
			if err := c.write(event); err != nil {
				return
			}
		default:
			return
		}
	}
}

func (c *client) write(event parser.Event) error {
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteJSON(event)
}

// readPump hands every inbound frame to handle until the socket fails.
func (c *client) readPump(handle func(data []byte)) {
	c.ws.SetReadLimit(maxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.Logger.Debug("Read failed: " + err.Error())
			}
			return
		}
		_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
		handle(data)
	}
}
