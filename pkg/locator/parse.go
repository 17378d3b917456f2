package locator

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Vision models wrap their JSON in prose or markdown fences more often than
// not. extractJSON pulls out the first object containing the given marker
// key; if nothing matches, the raw text is returned for the decoder to
// reject.
var (
	foundPattern = regexp.MustCompile(`\{[\s\S]*"found"[\s\S]*\}`)
	itemsPattern = regexp.MustCompile(`\{[\s\S]*"items"[\s\S]*\}`)
)

func extractJSON(text string, pattern *regexp.Regexp) string {
	s := text
	if m := pattern.FindString(s); m != "" {
		s = m
	}

	if idx := strings.Index(s, "```json"); idx >= 0 {
		s = s[idx+len("```json"):]
		if end := strings.Index(s, "```"); end >= 0 {
			s = s[:end]
		}
	} else if idx := strings.Index(s, "```"); idx >= 0 {
		s = s[idx+3:]
		if end := strings.Index(s, "```"); end >= 0 {
			s = s[:end]
		}
	}

	return strings.TrimSpace(s)
}

// bboxResponse is the expected shape of a localization reply.
type bboxResponse struct {
	Found      bool      `json:"found"`
	BBox       []float64 `json:"bbox"`
	Confidence float64   `json:"confidence"`
}

// decodeObservation turns raw model text into an Observation.
// Any decode failure, wrong arity, or degenerate box is not-found;
// malformed responses never surface as errors.
func decodeObservation(text string) Observation {
	raw := extractJSON(text, foundPattern)

	var resp bboxResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return Observation{}
	}
	if !resp.Found || len(resp.BBox) != 4 {
		return Observation{}
	}

	box := Box{
		XMin: clamp01(resp.BBox[0]),
		YMin: clamp01(resp.BBox[1]),
		XMax: clamp01(resp.BBox[2]),
		YMax: clamp01(resp.BBox[3]),
	}
	if !box.Valid() {
		return Observation{}
	}

	return Observation{
		Found:      true,
		Box:        box,
		Confidence: clamp01(resp.Confidence),
	}
}

// itemsResponse is the expected shape of an inventory scan reply.
type itemsResponse struct {
	Items []struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	} `json:"items"`
}

// decodeItems turns raw model text into an item-count map, or nil if the
// response cannot be decoded.
func decodeItems(text string) map[string]int {
	raw := extractJSON(text, itemsPattern)

	var resp itemsResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil
	}

	items := make(map[string]int, len(resp.Items))
	for _, it := range resp.Items {
		if it.Name == "" || it.Count < 0 {
			continue
		}
		items[it.Name] = it.Count
	}
	return items
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
