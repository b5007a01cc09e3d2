package ws

import (
	"encoding/json"

	"github.com/branchapp/branch/internal/models"
	"github.com/rs/zerolog"
)

type event struct {
	conv models.Conversation
	msg  models.Message
}

// Hub pushes newly appended messages to connected participants. It owns
// no persistence: the message log persists first and notifies after.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Appended messages to fan out.
	notify chan event

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	log zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		notify:     make(chan event, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		log:        logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
		case ev := <-h.notify:
			msgBytes, err := json.Marshal(ev.msg)
			if err != nil {
				h.log.Error().Err(err).Msg("encode message notification")
				continue
			}
			for client := range h.clients {
				if !ev.conv.HasParticipant(client.userID) {
					continue
				}
				select {
				case client.send <- msgBytes:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}

// MessageAppended implements messagelog.Notifier. Delivery is
// best-effort: if the hub is saturated the notification is dropped
// rather than stalling the append.
func (h *Hub) MessageAppended(conv models.Conversation, msg models.Message) {
	select {
	case h.notify <- event{conv: conv, msg: msg}:
	default:
		h.log.Warn().Str("message_id", msg.ID).Msg("notification dropped, hub saturated")
	}
}
