// Package realtime entrega eventos de reservas e pagamentos aos painéis conectados por websocket.
package realtime

import (
	"context"
	"sync"

	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/ports"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/infrastructure/metrics"
)

// Tipos de mensagem de controle trocados com o cliente
const (
	MessageTypePing = "ping"
	MessageTypePong = "pong"
)

// Message é o envelope enviado pelo websocket
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// Hub mantém os clientes conectados e distribui eventos respeitando o escopo de organização.
// Implementa ports.EventPublisher.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan ports.Event
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
	logger     ports.Logger
}

var _ ports.EventPublisher = (*Hub)(nil)

// NewHub cria um hub; chame RunWithContext em uma goroutine própria
func NewHub(logger ports.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan ports.Event, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger.With("component", "realtime-hub"),
	}
}

// RunWithContext processa registros e eventos até o contexto ser cancelado.
// Ao sair fecha todos os clientes.
func (h *Hub) RunWithContext(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			closed := h.closeAll()
			h.logger.Info("live hub stopped", "clients_closed", closed)
			return ctx.Err()

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			metrics.LiveClients.Set(float64(total))
			h.logger.Info("live client connected", "total_clients", total, "scope", client.scopeLabel())

		case client := <-h.unregister:
			h.remove(client)

		case event := <-h.broadcast:
			h.dispatch(event)
		}
	}
}

// Publish enfileira o evento sem bloquear; descarta quando a fila está cheia
func (h *Hub) Publish(_ context.Context, event ports.Event) {
	select {
	case h.broadcast <- event:
	default:
		h.logger.Warn("broadcast queue full, dropping event", "type", event.Type)
	}
}

// ClientCount retorna o número de clientes conectados
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) dispatch(event ports.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	msg := Message{Type: event.Type, Data: event}

	for client := range h.clients {
		if !client.accepts(event) {
			continue
		}
		select {
		case client.send <- msg:
		default:
			// cliente lento
			close(client.send)
			delete(h.clients, client)
		}
	}
	metrics.LiveClients.Set(float64(len(h.clients)))
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	total := len(h.clients)
	h.mu.Unlock()

	metrics.LiveClients.Set(float64(total))
	h.logger.Info("live client disconnected", "total_clients", total)
}

func (h *Hub) closeAll() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := len(h.clients)
	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
	}
	metrics.LiveClients.Set(0)
	return n
}
