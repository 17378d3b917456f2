package relay

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/teslashibe/go-pantry/internal/log"
)

// Config controls the relay connection.
type Config struct {
	// URL of the relay service websocket endpoint.
	URL string

	// DeviceID identifies this pantry to the relay service.
	DeviceID string

	DialTimeout  time.Duration
	PingInterval time.Duration
	MinBackoff   time.Duration
	MaxBackoff   time.Duration
}

// DefaultConfig returns connection settings suitable for a home network.
func DefaultConfig(url, deviceID string) Config {
	return Config{
		URL:          url,
		DeviceID:     deviceID,
		DialTimeout:  10 * time.Second,
		PingInterval: 30 * time.Second,
		MinBackoff:   time.Second,
		MaxBackoff:   30 * time.Second,
	}
}

// Client maintains the websocket link, reconnecting with exponential
// backoff whenever it drops.
type Client struct {
	cfg    Config
	logger *slog.Logger

	// OnAssist is called when the remote service requests guidance.
	OnAssist func(target string) error

	// OnStop is called when the remote service ends guidance.
	OnStop func()

	outbound chan []byte
}

// NewClient creates a relay client. Run must be called to connect.
func NewClient(cfg Config) *Client {
	return &Client{
		cfg:      cfg,
		logger:   log.With("component", "relay"),
		outbound: make(chan []byte, 64),
	}
}

// Run dials the relay service and processes commands until the context
// is cancelled. Connection drops trigger reconnects with backoff.
func (c *Client) Run(ctx context.Context) {
	backoff := c.cfg.MinBackoff

	for {
		if ctx.Err() != nil {
			return
		}

		conn, err := c.dial(ctx)
		if err != nil {
			c.logger.Warn("relay dial failed", "error", err, "retry_in", backoff)
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			backoff *= 2
			if backoff > c.cfg.MaxBackoff {
				backoff = c.cfg.MaxBackoff
			}
			continue
		}

		backoff = c.cfg.MinBackoff
		c.logger.Info("relay connected", "url", c.cfg.URL)
		c.session(ctx, conn)
	}
}

func (c *Client) dial(ctx context.Context) (*websocket.Conn, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: c.cfg.DialTimeout,
	}
	conn, _, err := dialer.DialContext(ctx, c.cfg.URL, nil)
	return conn, err
}

// session runs one connection until it breaks or the context ends.
func (c *Client) session(ctx context.Context, conn *websocket.Conn) {
	defer conn.Close()

	sessionCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if hello, err := encodeEvent(c.cfg.DeviceID, EventHello, nil); err == nil {
		conn.WriteMessage(websocket.TextMessage, hello)
	}

	go c.writePump(sessionCtx, conn)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil {
				c.logger.Warn("relay read failed", "error", err)
			}
			return
		}
		c.handleCommand(data)
	}
}

func (c *Client) writePump(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(c.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case data := <-c.outbound:
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleCommand(data []byte) {
	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		c.logger.Warn("bad relay command", "error", err)
		return
	}

	switch cmd.Type {
	case CmdAssist:
		if c.OnAssist == nil {
			return
		}
		if err := c.OnAssist(cmd.Target); err != nil {
			c.logger.Warn("assist command failed", "target", cmd.Target, "error", err)
			c.send(EventError, err.Error())
		}

	case CmdStop:
		if c.OnStop != nil {
			c.OnStop()
		}

	case CmdPing:
		c.send(EventPong, nil)

	default:
		c.logger.Warn("unknown relay command", "type", cmd.Type)
	}
}

// ReportStatus forwards a guidance status to the remote service.
func (c *Client) ReportStatus(status any) {
	c.send(EventStatus, status)
}

// send queues an event, dropping it if the buffer is full.
func (c *Client) send(eventType string, data any) {
	payload, err := encodeEvent(c.cfg.DeviceID, eventType, data)
	if err != nil {
		c.logger.Warn("failed to encode event", "type", eventType, "error", err)
		return
	}

	select {
	case c.outbound <- payload:
	default:
		c.logger.Warn("relay outbound full, dropping event", "type", eventType)
	}
}
