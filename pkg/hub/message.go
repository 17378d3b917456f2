// Package hub fans out dashboard events to websocket clients using a
// channel-based broadcast loop.
package hub

import (
	"encoding/json"
	"time"
)

// MessageType indicates the websocket message format
type MessageType int

const (
	// JSONMessage is a JSON-encoded message
	JSONMessage MessageType = iota
	// BinaryMessage is raw binary data (e.g., JPEG snapshots)
	BinaryMessage
)

// Message represents a message to be broadcast to clients
type Message struct {
	Type MessageType
	Data []byte
}

// NewJSONMessage creates a JSON message from pre-encoded bytes
func NewJSONMessage(data []byte) Message {
	return Message{Type: JSONMessage, Data: data}
}

// NewBinaryMessage creates a binary message
func NewBinaryMessage(data []byte) Message {
	return Message{Type: BinaryMessage, Data: data}
}

// Event kinds understood by the dashboard.
const (
	KindStatus = "status"
	KindScan   = "scan"
	KindNotice = "notice"
)

// Envelope wraps a payload with its kind and timestamp so the dashboard
// can route events without sniffing the payload shape.
type Envelope struct {
	Kind string    `json:"kind"`
	Time time.Time `json:"time"`
	Data any       `json:"data"`
}

// NewEnvelope packages a payload for broadcast.
func NewEnvelope(kind string, data any) Envelope {
	return Envelope{Kind: kind, Time: time.Now(), Data: data}
}

// Encode serializes the envelope into a broadcastable message.
func (e Envelope) Encode() (Message, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return Message{}, err
	}
	return NewJSONMessage(data), nil
}
