package ws

import (
	"encoding/json"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Hub manages all active feed connections. Every connected client receives
// every feed event; there are no per-topic subscriptions.
type Hub struct {
	// clients maps userID → client.
	clients map[primitive.ObjectID]*Client

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	log zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[primitive.ObjectID]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		log:        log,
	}
}

// Run starts the Hub's main event loop. Call this in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client.userID] = client
			h.log.Info().Str("user", client.userID.Hex()).Int("total", len(h.clients)).Msg("feed client connected")

		case client := <-h.unregister:
			if _, ok := h.clients[client.userID]; ok {
				delete(h.clients, client.userID)
				close(client.send)
				close(client.done)
				h.log.Info().Str("user", client.userID.Hex()).Int("total", len(h.clients)).Msg("feed client disconnected")
			}

		case data := <-h.broadcast:
			for _, client := range h.clients {
				select {
				case client.send <- data:
				default:
					// Client buffer full - disconnect
					delete(h.clients, client.userID)
					close(client.send)
					close(client.done)
				}
			}
		}
	}
}

// Broadcast sends an event to every connected client.
func (h *Hub) Broadcast(event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.log.Error().Err(err).Msg("feed hub: marshal")
		return
	}
	h.broadcast <- data
}
