package locator

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// chatResponse builds an OpenAI-style completion body around the given text.
func chatResponse(text string) []byte {
	body := map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"content": text}},
		},
	}
	data, _ := json.Marshal(body)
	return data
}

func TestClient_LocateSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(chatResponse(`{"found": true, "bbox": [0.4, 0.4, 0.6, 0.6], "confidence": 0.85}`))
	}))
	defer srv.Close()

	c, err := New(WithBaseURL(srv.URL), WithModels("test-model"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer c.Close()

	obs, err := c.Locate(context.Background(), []byte("jpeg"), "oreo cookies")
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	if !obs.Found {
		t.Fatal("expected found")
	}
	if center := obs.Box.Center(); center.X != 0.5 || center.Y != 0.5 {
		t.Errorf("unexpected center: %+v", center)
	}
}

func TestClient_ModelFallbackOnValidation(t *testing.T) {
	var models []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model string `json:"model"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		models = append(models, req.Model)

		if req.Model == "broken-model" {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error": {"message": "model not found"}}`))
			return
		}
		w.Write(chatResponse(`{"found": true, "bbox": [0.1, 0.1, 0.2, 0.2], "confidence": 0.5}`))
	}))
	defer srv.Close()

	c, _ := New(WithBaseURL(srv.URL), WithModels("broken-model", "working-model"))
	defer c.Close()

	obs, err := c.Locate(context.Background(), []byte("jpeg"), "soda")
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	if !obs.Found {
		t.Fatal("expected found from fallback model")
	}
	if len(models) != 2 || models[0] != "broken-model" || models[1] != "working-model" {
		t.Errorf("expected ordered fallback, got %v", models)
	}
}

func TestClient_NonValidationErrorPropagates(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": {"message": "boom"}}`))
	}))
	defer srv.Close()

	c, _ := New(WithBaseURL(srv.URL), WithModels("model-a", "model-b"))
	defer c.Close()

	_, err := c.Locate(context.Background(), []byte("jpeg"), "soda")
	if err == nil {
		t.Fatal("expected error for server failure")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.IsValidation() {
		t.Error("500 must not count as validation")
	}
	if calls != 1 {
		t.Errorf("server errors must not trigger fallback, got %d calls", calls)
	}
}

func TestClient_ExhaustionIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"message": "unsupported"}}`))
	}))
	defer srv.Close()

	c, _ := New(WithBaseURL(srv.URL), WithModels("model-a", "model-b"))
	defer c.Close()

	obs, err := c.Locate(context.Background(), []byte("jpeg"), "soda")
	if err != nil {
		t.Fatalf("exhaustion must not be fatal, got %v", err)
	}
	if obs.Found {
		t.Error("expected not-found after exhausting candidates")
	}
}

func TestClient_EmptyFrame(t *testing.T) {
	c, _ := New(WithModels("model"))
	defer c.Close()

	if _, err := c.Locate(context.Background(), nil, "soda"); !errors.Is(err, ErrEmptyFrame) {
		t.Errorf("expected ErrEmptyFrame, got %v", err)
	}
}

func TestClient_RequiresModels(t *testing.T) {
	if _, err := New(WithModels()); !errors.Is(err, ErrNoModels) {
		t.Errorf("expected ErrNoModels, got %v", err)
	}
}

func TestClient_DetectItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(chatResponse(`{"items": [{"name": "Soda can", "count": 4}]}`))
	}))
	defer srv.Close()

	c, _ := New(WithBaseURL(srv.URL), WithModels("model"))
	defer c.Close()

	items, err := c.DetectItems(context.Background(), []byte("jpeg"), ScanPantry)
	if err != nil {
		t.Fatalf("DetectItems failed: %v", err)
	}
	if items["Soda can"] != 4 {
		t.Errorf("unexpected items: %v", items)
	}
}
