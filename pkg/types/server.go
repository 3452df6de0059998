package types

// ServerInfo is the identity document returned by the health check endpoint.
type ServerInfo struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Status    string `json:"status"`
	Transport string `json:"transport"`
}

// Stream event types emitted by the heartbeat endpoint.
const (
	StreamEventConnection = "connection"
	StreamEventPing       = "ping"
)

// StreamEvent is a single event on the heartbeat stream.
// The first event on every connection is a "connection" event,
// followed by "ping" events carrying a unix timestamp.
type StreamEvent struct {
	Type      string `json:"type"`
	Status    string `json:"status,omitempty"`
	Timestamp int64  `json:"timestamp,omitempty"`
}
