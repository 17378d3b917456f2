// Package web exposes the pantry's control surface: a Twilio-compatible
// webhook for WhatsApp commands, a JSON API, and a live status websocket.
package web

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/teslashibe/go-pantry/internal/log"
	"github.com/teslashibe/go-pantry/pkg/assist"
	"github.com/teslashibe/go-pantry/pkg/hub"
	"github.com/teslashibe/go-pantry/pkg/inventory"
)

// Config carries the server's collaborators and settings.
type Config struct {
	// Port to listen on.
	Port string

	// AuthToken enables Twilio signature validation on the webhook
	// when non-empty.
	AuthToken string

	Manager *assist.Manager
	Scanner *inventory.Scanner
	Store   *inventory.Store
}

// Server is the pantry control server.
type Server struct {
	app    *fiber.App
	port   string
	logger *slog.Logger

	authToken string

	manager *assist.Manager
	scanner *inventory.Scanner
	store   *inventory.Store

	statusHub *hub.Hub
	hubCancel context.CancelFunc
}

// NewServer builds the fiber app and wires all routes.
func NewServer(cfg Config) *Server {
	s := &Server{
		port:      cfg.Port,
		logger:    log.With("component", "web"),
		authToken: cfg.AuthToken,
		manager:   cfg.Manager,
		scanner:   cfg.Scanner,
		store:     cfg.Store,
		statusHub: hub.New("status"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "Smart Pantry",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	app.Post("/webhook", s.handleWebhook)

	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Get("/inventory", s.handleInventory)
	api.Post("/scan", s.handleScan)
	api.Post("/assist", s.handleAssist)
	api.Post("/stop", s.handleStop)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/status", websocket.New(s.handleStatusWS))

	s.app = app
	return s
}

// PublishStatus forwards a guidance status to websocket subscribers.
// Wire it to the manager's OnStatus callback.
func (s *Server) PublishStatus(st assist.Status) {
	if err := s.statusHub.Publish(hub.KindStatus, st); err != nil {
		s.logger.Warn("failed to publish status", "error", err)
	}
}

// Start runs the hub and blocks serving HTTP until Shutdown.
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.hubCancel = cancel
	go s.statusHub.Run(ctx)

	s.logger.Info("listening", "port", s.port)
	return s.app.Listen(":" + s.port)
}

// Shutdown gracefully stops the server and disconnects websocket clients.
func (s *Server) Shutdown() error {
	if s.hubCancel != nil {
		s.hubCancel()
	}
	return s.app.Shutdown()
}
