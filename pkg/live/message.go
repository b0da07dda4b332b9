package live

import "encoding/json"

// Message types.
const (
	TypeSnapshot = "snapshot"
	TypeEvent    = "event"
	TypeError    = "error"
)

// Message is one websocket frame.
type Message struct {
	Type   string `json:"type"`
	HTML   string `json:"html,omitempty"`
	Target string `json:"target,omitempty"`
	Event  string `json:"event,omitempty"`
	Value  string `json:"value,omitempty"`
	Error  string `json:"error,omitempty"`
}

func encode(m Message) []byte {
	b, _ := json.Marshal(m)
	return b
}
