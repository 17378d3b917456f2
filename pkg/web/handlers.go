package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/teslashibe/go-pantry/pkg/hub"
	"github.com/teslashibe/go-pantry/pkg/locator"
)

// handleStatus returns the current guidance session state.
func (s *Server) handleStatus(c *fiber.Ctx) error {
	if s.manager == nil {
		return c.JSON(fiber.Map{"active": false})
	}

	session := s.manager.Active()
	if session == nil {
		return c.JSON(fiber.Map{"active": false})
	}
	return c.JSON(fiber.Map{
		"active": true,
		"status": session.LastStatus(),
	})
}

// handleInventory returns the tracked item counts.
func (s *Server) handleInventory(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"items": s.store.Items(),
		"total": s.store.Count(),
	})
}

// handleScan captures a frame, detects items, and returns what changed.
// The optional "mode" query switches between pantry and general detection.
func (s *Server) handleScan(c *fiber.Ctx) error {
	if s.scanner == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "scanner not configured",
		})
	}

	mode := locator.ScanPantry
	if c.Query("mode") == string(locator.ScanGeneral) {
		mode = locator.ScanGeneral
	}

	changes, err := s.scanner.Scan(c.Context(), mode)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	s.statusHub.Publish(hub.KindScan, changes)
	return c.JSON(fiber.Map{
		"changes": changes,
		"items":   s.store.Items(),
	})
}

// AssistRequest is the request body for starting guidance over the API.
type AssistRequest struct {
	Target string `json:"target"`
}

// handleAssist starts a guidance session for the requested item.
func (s *Server) handleAssist(c *fiber.Ctx) error {
	var req AssistRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if s.manager == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "assist not configured",
		})
	}

	session, err := s.manager.Start(req.Target)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"session_id": session.ID,
		"target":     session.Target,
	})
}

// handleStop requests the active guidance session to end.
func (s *Server) handleStop(c *fiber.Ctx) error {
	if s.manager != nil {
		s.manager.Stop()
	}
	return c.JSON(fiber.Map{"stopped": true})
}

// handleStatusWS streams guidance status events to a dashboard client.
func (s *Server) handleStatusWS(c *websocket.Conn) {
	hub.NewClient(s.statusHub, c).Run()
}
