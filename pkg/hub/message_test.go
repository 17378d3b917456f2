package hub

import (
	"encoding/json"
	"testing"
)

func TestEnvelopeEncode(t *testing.T) {
	msg, err := NewEnvelope(KindStatus, map[string]string{"target": "rice"}).Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if msg.Type != JSONMessage {
		t.Errorf("expected JSON message, got %v", msg.Type)
	}

	var decoded struct {
		Kind string            `json:"kind"`
		Data map[string]string `json:"data"`
	}
	if err := json.Unmarshal(msg.Data, &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded.Kind != KindStatus {
		t.Errorf("kind = %q, want %q", decoded.Kind, KindStatus)
	}
	if decoded.Data["target"] != "rice" {
		t.Errorf("payload lost: %v", decoded.Data)
	}
}

func TestPublishWithoutClientsDoesNotBlock(t *testing.T) {
	h := New("test")
	for i := 0; i < 300; i++ {
		if err := h.Publish(KindNotice, i); err != nil {
			t.Fatalf("Publish failed: %v", err)
		}
	}
	if h.ClientCount() != 0 {
		t.Errorf("expected zero clients, got %d", h.ClientCount())
	}
}
