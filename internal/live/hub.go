// Package live рассылает подключенным картам новые инциденты и обновления
package live

import (
	"context"
	"sync"

	"github.com/shenikar/incident_map/internal/metrics"
	"github.com/sirupsen/logrus"
)

// Типы сообщений
const (
	MessageTypeIncidentCreated = "incident_created"
	MessageTypeIncidentDeleted = "incident_deleted"
	MessageTypeUpdatePosted    = "update_posted"
	MessageTypeUpdateDeleted   = "update_deleted"
	MessageTypePing            = "ping"
	MessageTypePong            = "pong"
)

// Message - сообщение websocket
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Broadcaster - то, что нужно сервисам для оповещения карт
type Broadcaster interface {
	Broadcast(msg Message)
}

// Hub хранит подключенных клиентов и рассылает им сообщения
type Hub struct {
	clients    map[*Client]struct{}
	broadcast  chan Message
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	logger     *logrus.Logger
	mu         sync.RWMutex
}

func NewHub(logger *logrus.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		broadcast:  make(chan Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run обслуживает хаб до отмены контекста
func (h *Hub) Run(ctx context.Context) {
	h.logger.Info("Starting live hub...")
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			metrics.LiveClients.Set(0)
			h.logger.Info("Stopping live hub.")
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = struct{}{}
			total := len(h.clients)
			h.mu.Unlock()
			metrics.LiveClients.Set(float64(total))
			h.logger.WithField("total_clients", total).Debug("Live client connected")

		case client := <-h.unregister:
			h.removeClient(client)

		case msg := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- msg:
				default:
					// клиент не успевает читать - отключаем
					delete(h.clients, client)
					close(client.send)
				}
			}
			total := len(h.clients)
			h.mu.Unlock()
			metrics.LiveClients.Set(float64(total))
		}
	}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	total := len(h.clients)
	h.mu.Unlock()
	metrics.LiveClients.Set(float64(total))
	h.logger.WithField("total_clients", total).Debug("Live client disconnected")
}

// Broadcast ставит сообщение в очередь рассылки, не блокируя вызывающего
func (h *Hub) Broadcast(msg Message) {
	select {
	case h.broadcast <- msg:
	default:
		h.logger.WithField("type", msg.Type).Warn("Live broadcast queue is full, dropping message")
	}
}

// ClientCount возвращает число подключенных клиентов
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
