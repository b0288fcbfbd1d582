package ws

import (
	"context"
	"sync"

	"internship_backend/internal/logger"
)

// Envelope - формат всех сообщений, отправляемых клиенту
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// Hub хранит подключения по id пользователя. У пользователя может быть
// несколько открытых вкладок, событие получают все.
type Hub struct {
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run обслуживает подключения до отмены ctx, затем закрывает их все.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			conns, ok := h.clients[client.userID]
			if !ok {
				conns = make(map[*Client]struct{})
				h.clients[client.userID] = conns
			}
			conns[client] = struct{}{}
			h.mu.Unlock()
			logger.Debug("websocket client registered", "user_id", client.userID, "connections", len(conns))

		case client := <-h.unregister:
			h.remove(client)

		case <-ctx.Done():
			h.mu.Lock()
			for userID, conns := range h.clients {
				for c := range conns {
					close(c.send)
				}
				delete(h.clients, userID)
			}
			h.mu.Unlock()
			logger.Info("websocket hub stopped")
			return
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.clients[client.userID]
	if !ok {
		return
	}
	if _, ok := conns[client]; !ok {
		return
	}
	close(client.send)
	delete(conns, client)
	if len(conns) == 0 {
		delete(h.clients, client.userID)
	}
	logger.Debug("websocket client unregistered", "user_id", client.userID)
}

// join регистрирует клиента; false, если хаб уже остановлен
func (h *Hub) join(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// PublishToUser отправляет событие всем подключениям пользователя.
// Не блокируется: клиент с переполненной очередью отключается.
func (h *Hub) PublishToUser(userID string, event string, payload any) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[userID] {
		h.deliver(client, Envelope{Event: event, Data: payload})
	}
}

// sendTo отвечает конкретному клиенту, если он еще подключен
func (h *Hub) sendTo(client *Client, env Envelope) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if _, ok := h.clients[client.userID][client]; ok {
		h.deliver(client, env)
	}
}

// deliver вызывается под h.mu.RLock
func (h *Hub) deliver(client *Client, env Envelope) {
	select {
	case client.send <- env:
	default:
		logger.Warn("websocket send queue full, dropping client", "user_id", client.userID)
		go h.leave(client)
	}
}

// ConnectedUsers возвращает число пользователей с открытыми подключениями
func (h *Hub) ConnectedUsers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Done закрывается после остановки Run
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

func (h *Hub) connectionCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}
