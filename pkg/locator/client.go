package locator

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/teslashibe/go-pantry/internal/httpc"
)

// Client is the HTTP-based locator. It works with any OpenAI-compatible
// vision API and walks the configured model list on validation rejections.
type Client struct {
	baseURL string
	apiKey  string
	config  *Config
	http    *http.Client
	logger  *slog.Logger
}

// New creates a new locator client.
func New(opts ...Option) (*Client, error) {
	cfg := DefaultConfig()
	cfg.Apply(opts...)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		config:  cfg,
		http:    httpc.NewClient(cfg.Timeout),
		logger:  cfg.Logger.With("component", "locator.client"),
	}, nil
}

// Locate asks for the target's bounding box in the frame.
// Models are tried in order; a validation-type rejection moves to the next
// candidate, any other failure is returned immediately. Exhausting the list
// on validation rejections is logged and reported as not-found.
func (c *Client) Locate(ctx context.Context, jpeg []byte, target string) (Observation, error) {
	if len(jpeg) == 0 {
		return Observation{}, ErrEmptyFrame
	}

	text, err := c.visionCall(ctx, jpeg, locatePrompt(target))
	if err != nil {
		var exhausted *exhaustedError
		if errors.As(err, &exhausted) {
			c.logger.Warn("all candidate models rejected the request, treating as not found",
				"target", target,
				"models", len(c.config.Models),
			)
			return Observation{}, nil
		}
		return Observation{}, err
	}

	obs := decodeObservation(text)
	if !obs.Found {
		c.logger.Debug("target not located", "target", target)
	}
	return obs, nil
}

// DetectItems counts distinct visible items for an inventory scan.
func (c *Client) DetectItems(ctx context.Context, jpeg []byte, mode ScanMode) (map[string]int, error) {
	if len(jpeg) == 0 {
		return nil, ErrEmptyFrame
	}

	text, err := c.visionCall(ctx, jpeg, scanPrompt(mode))
	if err != nil {
		return nil, err
	}

	items := decodeItems(text)
	if items == nil {
		return nil, WrapError(fmt.Errorf("undecodable scan response"))
	}
	return items, nil
}

// Close releases client resources.
func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// exhaustedError marks that every candidate model rejected the request.
type exhaustedError struct {
	last error
}

func (e *exhaustedError) Error() string {
	return fmt.Sprintf("locator: all candidate models rejected, last: %v", e.last)
}

func (e *exhaustedError) Unwrap() error { return e.last }

// visionCall sends one image+prompt request, walking the model list.
func (c *Client) visionCall(ctx context.Context, jpeg []byte, prompt string) (string, error) {
	var lastValidation error

	for _, model := range c.config.Models {
		text, err := c.invokeModel(ctx, model, jpeg, prompt)
		if err == nil {
			return text, nil
		}

		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.IsValidation() {
			c.logger.Debug("model rejected request, trying next",
				"model", model,
				"status", apiErr.StatusCode,
			)
			lastValidation = err
			continue
		}

		return "", err
	}

	return "", &exhaustedError{last: lastValidation}
}

// chatCompletionResponse is the subset of the API response we consume.
type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *Client) invokeModel(ctx context.Context, model string, jpeg []byte, prompt string) (string, error) {
	start := time.Now()

	b64 := base64.StdEncoding.EncodeToString(jpeg)
	payload := map[string]interface{}{
		"model": model,
		"messages": []map[string]interface{}{
			{
				"role": "user",
				"content": []map[string]interface{}{
					{"type": "text", "text": prompt},
					{
						"type": "image_url",
						"image_url": map[string]string{
							"url": "data:image/jpeg;base64," + b64,
						},
					},
				},
			},
		},
		"max_tokens":  c.config.MaxTokens,
		"temperature": c.config.Temperature,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", WrapError(fmt.Errorf("marshal payload: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", WrapError(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", WrapError(err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", c.parseError(resp.StatusCode, respBody, model)
	}

	var result chatCompletionResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", WrapError(fmt.Errorf("decode response: %w", err))
	}
	if len(result.Choices) == 0 {
		return "", WrapError(fmt.Errorf("no choices returned"))
	}

	c.logger.Debug("vision call complete",
		"model", model,
		"latency_ms", time.Since(start).Milliseconds(),
	)

	return result.Choices[0].Message.Content, nil
}

// parseError extracts an API error from a non-200 response body.
func (c *Client) parseError(status int, body []byte, model string) error {
	var errResp struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	_ = json.Unmarshal(body, &errResp)

	msg := errResp.Error.Message
	if msg == "" {
		msg = truncate(string(body), 200)
	}

	return &APIError{StatusCode: status, Message: msg, Model: model}
}

func locatePrompt(target string) string {
	return fmt.Sprintf(`Find the item named "%s" in this image.

Return ONLY this JSON:
{
  "found": true/false,
  "bbox": [x_min, y_min, x_max, y_max],
  "confidence": 0-1
}

Rules:
- If the item is not visible, set "found" to false and use bbox [0,0,0,0]
- Coordinates must be normalized between 0 and 1
- Use tight boxes around the item
`, target)
}

func scanPrompt(mode ScanMode) string {
	if mode == ScanPantry {
		return `Analyze this pantry/kitchen shelf. Identify and count ONLY food and drink items.

RULES:
- Only count actual pantry items (food, drinks, packages)
- Ignore furniture, decorations, people, clothing
- Be specific: "Coca-Cola can", "Red apple", "Oreo cookies"

Return ONLY this JSON:
{
  "items": [
    {"name": "specific item name", "count": number}
  ]
}`
	}

	return `Look at this image and identify ALL distinct objects.

Count each separate object. Be specific with names.

Return ONLY this JSON:
{
  "items": [
    {"name": "specific object name", "count": number}
  ]
}`
}

// truncate shortens a string to maxLen characters.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}

// Verify Client implements both contracts at compile time.
var (
	_ Locator      = (*Client)(nil)
	_ ItemDetector = (*Client)(nil)
)
