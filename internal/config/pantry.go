// Package config provides configuration helpers for go-pantry commands.
package config

import (
	"os"
	"strconv"
)

// Defaults for the pantry commands.
const (
	DefaultPort          = "8080"
	DefaultInventoryPath = "smart_pantry_inventory.json"
	DefaultSnapshotDir   = "."
	DefaultCameraIndex   = 0
)

// CameraIndex returns the camera device index from CAMERA_INDEX.
// Falls back to the default if not set or not a number.
func CameraIndex() int {
	if v := os.Getenv("CAMERA_INDEX"); v != "" {
		if idx, err := strconv.Atoi(v); err == nil && idx >= 0 {
			return idx
		}
	}
	return DefaultCameraIndex
}

// Port returns the webhook server port from PORT or the default.
func Port() string {
	if p := os.Getenv("PORT"); p != "" {
		return p
	}
	return DefaultPort
}

// InventoryPath returns the inventory file path from INVENTORY_FILE or the default.
func InventoryPath() string {
	if p := os.Getenv("INVENTORY_FILE"); p != "" {
		return p
	}
	return DefaultInventoryPath
}

// SnapshotDir returns where debug snapshots are written, from SNAPSHOT_DIR or the default.
func SnapshotDir() string {
	if d := os.Getenv("SNAPSHOT_DIR"); d != "" {
		return d
	}
	return DefaultSnapshotDir
}

// LocatorAPIKey returns the vision API key from LOCATOR_API_KEY.
func LocatorAPIKey() string {
	return os.Getenv("LOCATOR_API_KEY")
}

// LocatorBaseURL returns an override for the vision API base URL, or empty.
func LocatorBaseURL() string {
	return os.Getenv("LOCATOR_BASE_URL")
}

// ElevenLabsAPIKey returns the TTS API key from ELEVENLABS_API_KEY, or empty.
func ElevenLabsAPIKey() string {
	return os.Getenv("ELEVENLABS_API_KEY")
}

// ElevenLabsVoice returns the TTS voice ID from ELEVENLABS_VOICE_ID, or empty.
func ElevenLabsVoice() string {
	return os.Getenv("ELEVENLABS_VOICE_ID")
}

// RelayURL returns the command relay websocket URL from RELAY_URL, or empty
// to disable the relay client.
func RelayURL() string {
	return os.Getenv("RELAY_URL")
}

// TwilioAuthToken returns the webhook signing token from TWILIO_AUTH_TOKEN.
// Empty disables signature validation (dev mode).
func TwilioAuthToken() string {
	return os.Getenv("TWILIO_AUTH_TOKEN")
}

// HandModelPath returns the hand landmark model path from HAND_MODEL or the default.
func HandModelPath() string {
	if p := os.Getenv("HAND_MODEL"); p != "" {
		return p
	}
	return "models/hand_landmarks.onnx"
}
