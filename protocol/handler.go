package protocol

import (
	"encoding/json"
	"log/slog"
	"sync"

	"sufuf-status-server/domain"
	"sufuf-status-server/metrics"
)

// Handler is the update dispatcher: it pushes the initial snapshot to new
// connections and turns inbound updateStatus frames into table mutations
// plus a statusUpdated fan-out. It holds no state of its own between
// messages beyond its effect on the table.
//
// The mutex serializes the dispatcher's two critical sequences: apply then
// broadcast for updates, and register then snapshot for new connections.
// Without it, two updates to the same room could be broadcast in the
// inverse of their apply order, and a broadcast could reach a connection's
// send queue ahead of its initial snapshot.
type Handler struct {
	mu          sync.Mutex
	broadcaster domain.Broadcaster
	table       domain.StateTable
}

func NewHandler(b domain.Broadcaster, t domain.StateTable) *Handler {
	return &Handler{broadcaster: b, table: t}
}

// HandleOpen registers the connection and sends it the full current room
// table, the first frame it sees on the channel. Registration and the
// snapshot send happen atomically with respect to broadcasts, so no update
// can slip between them.
func (h *Handler) HandleOpen(conn domain.Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.broadcaster.Register(conn)

	payload, err := domain.EncodeInitialStatus(h.table.Snapshot())
	if err != nil {
		slog.Error("encode initial status", "clientId", conn.ID(), "error", err)
		return
	}
	if err := conn.Send(payload); err != nil {
		slog.Warn("initial sync failed", "clientId", conn.ID(), "error", err)
	}
}

// Handle processes one inbound frame. Malformed payloads and unrecognized
// message types are dropped without closing the connection; updates for
// unknown rooms neither mutate state nor broadcast.
func (h *Handler) Handle(conn domain.Connection, data []byte) {
	metrics.MessagesReceived.Inc()

	var msg domain.Envelope
	if err := json.Unmarshal(data, &msg); err != nil {
		slog.Warn("invalid message", "clientId", conn.ID(), "error", err)
		return
	}

	switch msg.Type {
	case domain.TypeUpdateStatus:
		h.updateStatus(conn, msg)
	default:
		// Unknown kinds are ignored, not rejected.
		slog.Debug("ignoring message", "clientId", conn.ID(), "type", msg.Type)
	}
}

func (h *Handler) updateStatus(conn domain.Connection, msg domain.Envelope) {
	status := domain.StatusFromWire(msg.Status)

	// Apply and broadcast run as one step; two updates to the same room
	// are broadcast in the order they were applied.
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.table.Apply(msg.Room, status)
	if !ok {
		slog.Debug("unknown room", "clientId", conn.ID(), "room", msg.Room)
		return
	}

	payload, err := domain.EncodeStatusUpdated(room.ID, room.Status)
	if err != nil {
		slog.Error("encode status update", "room", room.ID, "error", err)
		return
	}

	metrics.UpdatesApplied.Inc()
	slog.Info("status updated", "room", room.ID, "status", room.Status, "clientId", conn.ID())

	h.broadcaster.Broadcast(payload)
}
