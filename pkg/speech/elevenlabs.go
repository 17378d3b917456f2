package speech

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"runtime"
	"time"
)

const elevenLabsBaseURL = "https://api.elevenlabs.io/v1"

// ElevenLabs synthesizes speech through the ElevenLabs HTTP API and plays
// the returned MP3 through a local player command.
type ElevenLabs struct {
	config  *Config
	client  *http.Client
	logger  *slog.Logger
	baseURL string
	player  string
}

// NewElevenLabs creates an ElevenLabs synthesizer.
func NewElevenLabs(opts ...Option) (*ElevenLabs, error) {
	cfg := DefaultConfig()
	cfg.Apply(opts...)

	if cfg.VoiceID == "" {
		cfg.VoiceID = DefaultVoice
	}
	cfg.VoiceID = ResolveVoice(cfg.VoiceID)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = elevenLabsBaseURL
	}

	player := cfg.PlayerCommand
	if player == "" {
		if runtime.GOOS == "darwin" {
			player = "afplay"
		} else {
			player = "mpg123"
		}
	}

	return &ElevenLabs{
		config:  cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  cfg.Logger.With("component", "speech.elevenlabs"),
		baseURL: baseURL,
		player:  player,
	}, nil
}

// Speak synthesizes the text and plays it locally.
func (e *ElevenLabs) Speak(text string) error {
	if text == "" {
		return ErrEmptyText
	}

	start := time.Now()

	audio, err := e.synthesize(text)
	if err != nil {
		return err
	}

	e.logger.Debug("synthesized audio",
		"chars", len(text),
		"bytes", len(audio),
		"latency_ms", time.Since(start).Milliseconds(),
	)

	return e.play(audio)
}

func (e *ElevenLabs) synthesize(text string) ([]byte, error) {
	url := fmt.Sprintf("%s/text-to-speech/%s", e.baseURL, e.config.VoiceID)

	payload := map[string]interface{}{
		"text":     text,
		"model_id": e.config.ModelID,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, WrapError("elevenlabs", fmt.Errorf("marshal payload: %w", err))
	}

	req, err := http.NewRequest("POST", url, bytes.NewReader(body))
	if err != nil {
		return nil, WrapError("elevenlabs", fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", e.config.APIKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, WrapError("elevenlabs", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return nil, WrapError("elevenlabs",
			fmt.Errorf("API error %d: %s", resp.StatusCode, string(msg)))
	}

	return io.ReadAll(resp.Body)
}

// play writes the audio to a temp file and hands it to the player command.
func (e *ElevenLabs) play(audio []byte) error {
	f, err := os.CreateTemp("", "pantry_speech_*.mp3")
	if err != nil {
		return WrapError("elevenlabs", fmt.Errorf("temp file: %w", err))
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(audio); err != nil {
		f.Close()
		return WrapError("elevenlabs", fmt.Errorf("write audio: %w", err))
	}
	f.Close()

	if err := exec.Command(e.player, f.Name()).Run(); err != nil {
		return WrapError("elevenlabs", fmt.Errorf("%s: %w", e.player, err))
	}
	return nil
}

var _ Synthesizer = (*ElevenLabs)(nil)
