package ws

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"card-duel-server/auth"
	"card-duel-server/rooms"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4096
)

// Client is a middleman between the websocket connection and a room.
type Client struct {
	Hub  *Hub
	Conn *websocket.Conn
	Send chan []byte

	// ID is the connection identity used for seat binding.
	ID   string
	Name string

	// Room is set after a successful join.
	Room *rooms.Room
}

// ReadPump pumps messages from the websocket connection to the room layer.
// It runs in its own goroutine per connection.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("websocket read error", "tag", "ws", "err", err)
			}
			break
		}

		c.handleMessage(message)
	}
}

// WritePump pumps messages from the send channel to the websocket connection.
// It runs in its own goroutine per connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleMessage(data []byte) {
	var envelope InboundEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		c.sendError("Invalid message format.")
		return
	}

	switch envelope.Type {
	case "join":
		c.handleJoin(envelope.Raw)
	case "action":
		c.handleAction(envelope.Raw)
	default:
		c.sendError("Unknown message type: " + envelope.Type)
	}
}

func (c *Client) handleJoin(raw json.RawMessage) {
	var msg JoinMsg
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.sendError("Invalid join message.")
		return
	}
	if msg.RoomID == "" {
		c.sendError("A room id is required.")
		return
	}
	if len(msg.PlayerName) > c.Hub.Config.MaxNameLength {
		c.sendError(fmt.Sprintf("Name must be at most %d characters.", c.Hub.Config.MaxNameLength))
		return
	}

	name := msg.PlayerName
	if c.Hub.Config.AuthBaseURL != "" {
		claims, err := auth.ValidateToken(c.Hub.Config.AuthBaseURL, msg.Token)
		if err != nil {
			slog.Warn("join rejected", "tag", "ws", "err", err)
			c.sendError("Authentication failed.")
			return
		}
		if name == "" {
			name = auth.FirstNameFromClaims(claims)
		}
	}

	c.Name = name
	room := c.Hub.Registry.Join(msg.RoomID, &rooms.Member{
		ID:   c.ID,
		Name: name,
		Send: c.Send,
	}, msg.VsBot)

	// Switching rooms frees the old seat; a rejoin of the same room keeps it.
	if c.Room != nil && c.Room != room {
		c.Room.Leave(c.ID)
	}
	c.Room = room
}

func (c *Client) handleAction(raw json.RawMessage) {
	if c.Room == nil {
		c.sendError("You are not in a room.")
		return
	}

	var msg ActionMsg
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.sendError("Invalid action message.")
		return
	}

	// Legality is the room's call; an out-of-turn or otherwise illegal
	// action is dropped there without a reply.
	c.Room.Act(c.ID, msg.Action)
}

func (c *Client) sendError(message string) {
	msg := ErrorMsg{Type: "error", Message: message}
	data, _ := json.Marshal(msg)
	select {
	case c.Send <- data:
	default:
	}
}
