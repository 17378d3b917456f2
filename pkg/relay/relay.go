// Package relay keeps an outbound websocket link to a remote control
// service so chat commands reach the pantry without exposing a public
// webhook. The remote side sends commands; the client reports status.
package relay

import (
	"encoding/json"
	"time"
)

// Command types sent by the remote service.
const (
	CmdAssist = "assist"
	CmdStop   = "stop"
	CmdPing   = "ping"
)

// Event types reported by the client.
const (
	EventHello  = "hello"
	EventStatus = "status"
	EventError  = "error"
	EventPong   = "pong"
)

// Command is an instruction from the remote service.
type Command struct {
	Type   string `json:"type"`
	Target string `json:"target,omitempty"`
}

// Event is a report sent to the remote service.
type Event struct {
	Type     string    `json:"type"`
	DeviceID string    `json:"device_id"`
	Time     time.Time `json:"time"`
	Data     any       `json:"data,omitempty"`
}

func encodeEvent(deviceID, eventType string, data any) ([]byte, error) {
	return json.Marshal(Event{
		Type:     eventType,
		DeviceID: deviceID,
		Time:     time.Now(),
		Data:     data,
	})
}
