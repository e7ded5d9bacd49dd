package domain

import "encoding/json"

// Status is the display state of a room.
type Status string

const (
	StatusGrey  Status = "grey"
	StatusGreen Status = "green"
	StatusRed   Status = "red"
)

// StatusFromWire maps the client-facing vocabulary onto the internal one.
// Anything that is not exactly "OK" or "NOK" lands on grey.
func StatusFromWire(raw string) Status {
	switch raw {
	case "OK":
		return StatusGreen
	case "NOK":
		return StatusRed
	default:
		return StatusGrey
	}
}

// Room is a monitored space with its current status.
type Room struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status Status `json:"status"`
}

// Message type discriminants on the wire.
const (
	TypeInitialStatus = "initialStatus"
	TypeUpdateStatus  = "updateStatus"
	TypeStatusUpdated = "statusUpdated"
)

// Envelope is the inbound client frame, decoded once at the protocol
// boundary. Type selects the branch; unrecognized types are ignored.
type Envelope struct {
	Type   string `json:"type"`
	Room   string `json:"room"`
	Status string `json:"status"`
}

// InitialStatus is the one-time full-state push sent right after a
// connection registers.
type InitialStatus struct {
	Type string          `json:"type"`
	Data map[string]Room `json:"data"`
}

// StatusUpdated is the broadcast sent to every connection after a room's
// status changed.
type StatusUpdated struct {
	Type string        `json:"type"`
	Data UpdatedStatus `json:"data"`
}

type UpdatedStatus struct {
	Room   string `json:"room"`
	Status Status `json:"status"`
}

// EncodeInitialStatus serializes the snapshot frame for one connection.
func EncodeInitialStatus(rooms map[string]Room) ([]byte, error) {
	return json.Marshal(InitialStatus{Type: TypeInitialStatus, Data: rooms})
}

// EncodeStatusUpdated serializes the fan-out frame once; the same bytes go
// to every connection.
func EncodeStatusUpdated(roomID string, status Status) ([]byte, error) {
	return json.Marshal(StatusUpdated{Type: TypeStatusUpdated, Data: UpdatedStatus{Room: roomID, Status: status}})
}

type Connection interface {
	ID() string
	Ready() bool
	Send(data []byte) error
	Close() error
}

type Broadcaster interface {
	Register(conn Connection)
	Unregister(conn Connection)
	Broadcast(data []byte)
	Stats() (clients int)
}

// MessageHandler owns the connection-open path (register + initial sync)
// and inbound frame processing.
type MessageHandler interface {
	HandleOpen(conn Connection)
	Handle(conn Connection, data []byte)
}

// StateTable holds the authoritative status of every configured room.
type StateTable interface {
	Snapshot() map[string]Room
	Apply(roomID string, status Status) (Room, bool)
}
