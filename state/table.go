package state

import (
	"sync"

	"sufuf-status-server/config"
	"sufuf-status-server/domain"
)

// Table is the authoritative in-process room-status store. The room set is
// fixed at construction; only statuses change afterwards.
type Table struct {
	mu    sync.RWMutex
	rooms map[string]*domain.Room
}

// NewTable builds the table from the configured rooms, all starting grey.
func NewTable(cfg *config.Config) *Table {
	rooms := make(map[string]*domain.Room, len(cfg.Rooms))
	for _, r := range cfg.Rooms {
		rooms[r.ID] = &domain.Room{ID: r.ID, Title: r.Title, Status: domain.StatusGrey}
	}
	return &Table{rooms: rooms}
}

// Snapshot returns a copy of the full current mapping. Used once per newly
// registered connection for the initial sync.
func (t *Table) Snapshot() map[string]domain.Room {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make(map[string]domain.Room, len(t.rooms))
	for id, r := range t.rooms {
		out[id] = *r
	}
	return out
}

// Apply overwrites the room's status and returns the updated record.
// Unknown room ids are a no-op; the second return is false and nothing
// changes. Room ids match exactly, case-sensitive.
func (t *Table) Apply(roomID string, status domain.Status) (domain.Room, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	r, ok := t.rooms[roomID]
	if !ok {
		return domain.Room{}, false
	}
	r.Status = status
	return *r, true
}
