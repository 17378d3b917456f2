package locator

import "testing"

func TestDecodeObservation_CleanJSON(t *testing.T) {
	obs := decodeObservation(`{"found": true, "bbox": [0.40, 0.40, 0.60, 0.60], "confidence": 0.9}`)

	if !obs.Found {
		t.Fatal("expected found")
	}
	center := obs.Box.Center()
	if center.X != 0.5 || center.Y != 0.5 {
		t.Errorf("expected center (0.5,0.5), got (%v,%v)", center.X, center.Y)
	}
	if obs.Confidence != 0.9 {
		t.Errorf("expected confidence 0.9, got %v", obs.Confidence)
	}
}

func TestDecodeObservation_MarkdownFenced(t *testing.T) {
	text := "Here is the result:\n```json\n{\"found\": true, \"bbox\": [0.1, 0.2, 0.3, 0.4], \"confidence\": 0.7}\n```\nHope that helps!"

	obs := decodeObservation(text)
	if !obs.Found {
		t.Fatal("expected found for fenced JSON")
	}
	if obs.Box.XMin != 0.1 || obs.Box.YMax != 0.4 {
		t.Errorf("unexpected box: %+v", obs.Box)
	}
}

func TestDecodeObservation_ProseWrapped(t *testing.T) {
	text := `I can see the item. {"found": true, "bbox": [0.2, 0.2, 0.5, 0.5], "confidence": 0.8} Let me know if you need more.`

	obs := decodeObservation(text)
	if !obs.Found {
		t.Fatal("expected found for prose-wrapped JSON")
	}
}

func TestDecodeObservation_NotFound(t *testing.T) {
	obs := decodeObservation(`{"found": false, "bbox": [0, 0, 0, 0], "confidence": 0}`)
	if obs.Found {
		t.Error("expected not found")
	}
}

func TestDecodeObservation_DegenerateBox(t *testing.T) {
	cases := []string{
		`{"found": true, "bbox": [0.5, 0.5, 0.5, 0.5], "confidence": 1}`, // zero area
		`{"found": true, "bbox": [0.6, 0.2, 0.4, 0.8], "confidence": 1}`, // inverted x
		`{"found": true, "bbox": [0.2, 0.8, 0.8, 0.2], "confidence": 1}`, // inverted y
		`{"found": true, "bbox": [0.2, 0.2, 0.8], "confidence": 1}`,      // wrong arity
	}

	for _, raw := range cases {
		if obs := decodeObservation(raw); obs.Found {
			t.Errorf("expected not-found for degenerate response %s", raw)
		}
	}
}

func TestDecodeObservation_ClampsOutOfRange(t *testing.T) {
	obs := decodeObservation(`{"found": true, "bbox": [-0.1, 0.2, 0.5, 1.3], "confidence": 2.0}`)

	if !obs.Found {
		t.Fatal("expected found after clamping")
	}
	if obs.Box.XMin != 0 || obs.Box.YMax != 1 {
		t.Errorf("expected clamped box, got %+v", obs.Box)
	}
	if obs.Confidence != 1 {
		t.Errorf("expected clamped confidence 1, got %v", obs.Confidence)
	}
}

func TestDecodeObservation_Garbage(t *testing.T) {
	cases := []string{
		"",
		"I could not find anything in this image.",
		"{broken json",
	}

	for _, raw := range cases {
		if obs := decodeObservation(raw); obs.Found {
			t.Errorf("expected not-found for %q", raw)
		}
	}
}

func TestDecodeItems(t *testing.T) {
	text := "```json\n{\"items\": [{\"name\": \"Oreo cookies\", \"count\": 2}, {\"name\": \"Red apple\", \"count\": 3}]}\n```"

	items := decodeItems(text)
	if items == nil {
		t.Fatal("expected items")
	}
	if items["Oreo cookies"] != 2 || items["Red apple"] != 3 {
		t.Errorf("unexpected items: %v", items)
	}
}

func TestDecodeItems_SkipsInvalidEntries(t *testing.T) {
	items := decodeItems(`{"items": [{"name": "", "count": 2}, {"name": "Soda", "count": -1}, {"name": "Rice", "count": 1}]}`)

	if len(items) != 1 || items["Rice"] != 1 {
		t.Errorf("expected only valid entries, got %v", items)
	}
}

func TestDecodeItems_Garbage(t *testing.T) {
	if items := decodeItems("no json here"); items != nil {
		t.Errorf("expected nil for garbage, got %v", items)
	}
}
