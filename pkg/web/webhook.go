package web

import (
	"encoding/xml"
	"fmt"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// twimlResponse is the messaging reply format Twilio expects.
type twimlResponse struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}

func twiml(body string) (string, error) {
	out, err := xml.Marshal(twimlResponse{Message: body})
	if err != nil {
		return "", err
	}
	return xml.Header + string(out), nil
}

// handleWebhook receives inbound WhatsApp messages relayed by Twilio and
// replies over TwiML. Commands: alert, list, assist <item>, stop.
func (s *Server) handleWebhook(c *fiber.Ctx) error {
	if s.authToken != "" {
		if err := validateTwilioSignature(c, s.authToken); err != nil {
			s.logger.Warn("rejected webhook", "error", err)
			return c.Status(fiber.StatusForbidden).SendString("Forbidden")
		}
	}

	body := strings.ToLower(strings.TrimSpace(c.FormValue("Body")))
	from := c.FormValue("From")
	s.logger.Info("webhook command", "from", from, "body", body)

	reply := s.runCommand(body)

	out, err := twiml(reply)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "text/xml")
	return c.SendString(out)
}

// runCommand executes one chat command and returns the reply text.
func (s *Server) runCommand(body string) string {
	switch {
	case body == "alert":
		return s.alertReply()

	case body == "list":
		return s.listReply()

	case strings.HasPrefix(body, "assist "):
		target := strings.TrimSpace(strings.TrimPrefix(body, "assist"))
		if target == "" {
			return "Usage: assist <item>"
		}
		if s.manager == nil {
			return "Assist mode not ready. Start the server from the main app first."
		}
		if _, err := s.manager.Start(target); err != nil {
			return "Could not start assist: " + err.Error()
		}
		return fmt.Sprintf("Assist started for: %s\nSend 'stop' to end.", target)

	case body == "stop":
		if s.manager != nil {
			s.manager.Stop()
		}
		return "Assist stopped."

	default:
		return "Commands:\n'alert' - Get zero items\n'list' - Get full inventory\n'assist <item>' - Start guidance\n'stop' - Stop guidance"
	}
}

func (s *Server) alertReply() string {
	var zero []string
	for name, count := range s.store.Items() {
		if count == 0 {
			zero = append(zero, name)
		}
	}
	sort.Strings(zero)

	switch len(zero) {
	case 0:
		return "No items at zero quantity"
	case 1:
		return "PANTRY ALERT\n\nOut of stock:\n- " + zero[0]
	default:
		return fmt.Sprintf("PANTRY ALERT\n\nOut of stock (%d items):\n- %s",
			len(zero), strings.Join(zero, "\n- "))
	}
}

func (s *Server) listReply() string {
	items := s.store.Items()
	if len(items) == 0 {
		return "Inventory is empty. Scan items first."
	}

	names := make([]string, 0, len(items))
	for name := range items {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	fmt.Fprintf(&b, "PANTRY INVENTORY\n\nTotal: %d items\n\n", len(items))
	for _, name := range names {
		if items[name] == 0 {
			fmt.Fprintf(&b, "- %s: OUT OF STOCK\n", name)
		} else {
			fmt.Fprintf(&b, "- %s: %d\n", name, items[name])
		}
	}
	return b.String()
}
