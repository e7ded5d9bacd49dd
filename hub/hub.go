package hub

import (
	"log/slog"
	"sync"

	"sufuf-status-server/domain"
	"sufuf-status-server/metrics"
)

// Hub is the connection registry: the exact set of currently open
// connections and the send-to-all primitive over them.
type Hub struct {
	clients map[string]domain.Connection
	mu      sync.RWMutex
}

func New() *Hub {
	return &Hub{
		clients: make(map[string]domain.Connection),
	}
}

// Register adds a newly opened connection to the active set. The same
// client connecting twice yields two independent entries.
func (h *Hub) Register(conn domain.Connection) {
	h.mu.Lock()
	h.clients[conn.ID()] = conn
	count := len(h.clients)
	h.mu.Unlock()

	metrics.ConnectionsActive.Inc()
	slog.Info("client connected", "clientId", conn.ID(), "clients", count)
}

// Unregister removes a connection when it closes. Removing an absent
// connection is a no-op.
func (h *Hub) Unregister(conn domain.Connection) {
	h.mu.Lock()
	_, present := h.clients[conn.ID()]
	delete(h.clients, conn.ID())
	count := len(h.clients)
	h.mu.Unlock()

	if !present {
		return
	}

	metrics.ConnectionsActive.Dec()
	slog.Info("client disconnected", "clientId", conn.ID(), "clients", count)
}

// Broadcast sends the identical payload to every registered connection
// whose transport is still open, the sender included. Connections found
// non-ready are skipped, not unregistered; unregistration belongs to the
// close path. A failed send to one connection never aborts the rest.
func (h *Hub) Broadcast(data []byte) {
	h.mu.RLock()
	conns := make([]domain.Connection, 0, len(h.clients))
	for _, conn := range h.clients {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		if !conn.Ready() {
			continue
		}
		if err := conn.Send(data); err != nil {
			metrics.PayloadsDropped.Inc()
			slog.Warn("send failed", "clientId", conn.ID(), "error", err)
		}
	}
}

// Stats reports the number of registered connections.
func (h *Hub) Stats() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
