// Package websocket implements the hub that broadcasts live scoring updates.
// Players watching a round see leaderboard and match-state changes the
// moment a score is entered, without polling: handlers push a snapshot into
// the hub after every recompute, and the hub fans it out to every client
// subscribed to that round.
package websocket

import (
	"encoding/json"
	"sync"
)

// EventKind labels what a broadcast payload contains so clients can route
// it without sniffing the JSON.
type EventKind string

const (
	EventLeaderboard EventKind = "leaderboard" // Payload is a ranked leaderboard snapshot
	EventMatch       EventKind = "match"       // Payload is a match state snapshot
)

// Event is a typed unit of data broadcast to all clients watching a round.
type Event struct {
	RoundID string      `json:"round_id"`
	Kind    EventKind   `json:"kind"`
	Payload interface{} `json:"payload"`
}

// Client represents a single connected WebSocket client. Each watcher of a
// live round has one Client instance on the server.
type Client struct {
	RoundID string      // Which round this client is watching
	Send    chan []byte // Buffered channel of outgoing messages; the transport goroutine drains it
}

// message is a marshaled Event on its way to one round's clients.
type message struct {
	roundID string
	data    []byte
}

// Hub manages all active connections, grouped by round ID. It runs in its
// own goroutine and processes registration, unregistration, and broadcast
// through channels, keeping all map mutation on a single goroutine.
type Hub struct {
	// clients is roundID -> set of clients. A map[*Client]bool serves as
	// the set type.
	clients map[string]map[*Client]bool

	broadcast  chan message
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	// mu guards clients between the run loop (writes) and broadcast
	// fan-out reads.
	mu sync.RWMutex
}

// NewHub creates an initialized Hub. The broadcast channel is buffered so
// score-submission handlers don't block if the hub goroutine is briefly
// busy; register/unregister are unbuffered because those must complete
// synchronously.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		broadcast:  make(chan message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run is the hub's main event loop; call it in a goroutine ("go hub.Run()").
// It processes one event at a time until Shutdown is called.
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			return

		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.RoundID] == nil {
				h.clients[client.RoundID] = make(map[*Client]bool)
			}
			h.clients[client.RoundID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.RoundID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.Send) // signals the transport writer to stop
					if len(clients) == 0 {
						delete(h.clients, client.RoundID)
					}
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			clients := h.clients[msg.roundID]
			h.mu.RUnlock()

			for client := range clients {
				select {
				case client.Send <- msg.data:
				default:
					// Send buffer full: the client is too slow. Drop it
					// rather than blocking the loop for everyone else.
					h.unregister <- client
				}
			}
		}
	}
}

// Shutdown stops the run loop. Registered clients keep their Send channels
// open; the transports notice the closed connection and clean up.
func (h *Hub) Shutdown() {
	close(h.done)
}

// Broadcast marshals an event and queues it for every client watching the
// event's round. Marshal failures are silently dropped — a snapshot that
// can't serialize must never fail the score submission that produced it.
func (h *Hub) Broadcast(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	h.broadcast <- message{roundID: ev.RoundID, data: data}
}

// Register adds a client so it starts receiving broadcasts for its round.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client when its connection closes.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}
