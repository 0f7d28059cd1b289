package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"chem-calc-api/internal/chem"
	"chem-calc-api/internal/observability"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func TestNewRouterHealthEndpoint(t *testing.T) {
	observability.Logger = zap.NewNop()

	router := NewRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	if body := w.Body.String(); body != "ok" {
		t.Fatalf("expected body %q, got %q", "ok", body)
	}
}

func TestNewRouterMolarMassSetsHeaderAndOmitsRequestIDInBody(t *testing.T) {
	observability.Logger = zap.NewNop()
	if err := chem.InitMetrics(); err != nil {
		t.Fatalf("initializing chem metrics: %v", err)
	}

	router := NewRouter()
	req := httptest.NewRequest(http.MethodGet, "/molar-mass/H2O", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	requestID := w.Result().Header.Get("X-Request-ID")
	if requestID == "" {
		t.Fatal("expected X-Request-ID header to be set")
	}
	if _, err := uuid.Parse(requestID); err != nil {
		t.Fatalf("expected valid UUID in X-Request-ID, got %q: %v", requestID, err)
	}

	var payload map[string]any
	if err := json.NewDecoder(w.Result().Body).Decode(&payload); err != nil {
		t.Fatalf("decoding JSON response: %v", err)
	}

	if _, ok := payload["request_id"]; ok {
		t.Fatal("did not expect request_id field in success JSON body")
	}

	if got, ok := payload["molar_mass"].(string); !ok || got != "1.802x10^1" {
		t.Fatalf("expected molar_mass 1.802x10^1, got %#v", payload["molar_mass"])
	}
	if got, ok := payload["units"].(string); !ok || got != "g/mol" {
		t.Fatalf("expected units g/mol, got %#v", payload["units"])
	}
}

func TestNewRouterRunCommandsBatch(t *testing.T) {
	observability.Logger = zap.NewNop()
	if err := chem.InitMetrics(); err != nil {
		t.Fatalf("initializing chem metrics: %v", err)
	}

	router := NewRouter()
	body := []byte(`{"commands":[
		{"number":"1","command":"molar_mass","parameters":{"formula":"H2O"}},
		{"number":"2","command":"electronegativity","parameters":{"formula":"F"}}
	]}`)
	req := httptest.NewRequest(http.MethodPost, "/run-commands", bytes.NewReader(body))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var payload chem.RunCommandsResponse
	if err := json.NewDecoder(w.Result().Body).Decode(&payload); err != nil {
		t.Fatalf("decoding JSON response: %v", err)
	}

	if len(payload.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(payload.Results))
	}

	first := payload.Results[0]
	if first.Number != "1" || first.Status != "OK" {
		t.Fatalf("expected result 1 OK, got %+v", first)
	}
	if first.Result != "18.02 g/mol" {
		t.Fatalf("expected result %q, got %q", "18.02 g/mol", first.Result)
	}

	second := payload.Results[1]
	if second.Number != "2" || second.Status != "ERR" {
		t.Fatalf("expected result 2 ERR, got %+v", second)
	}
	if second.Result != "electronegativity not implemented" {
		t.Fatalf("expected not-implemented message, got %q", second.Result)
	}
}

func TestNewRouterMolarMassBadFormula(t *testing.T) {
	observability.Logger = zap.NewNop()
	if err := chem.InitMetrics(); err != nil {
		t.Fatalf("initializing chem metrics: %v", err)
	}

	router := NewRouter()
	req := httptest.NewRequest(http.MethodGet, "/molar-mass/water", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}

	var payload map[string]string
	if err := json.NewDecoder(w.Result().Body).Decode(&payload); err != nil {
		t.Fatalf("decoding JSON response: %v", err)
	}
	if payload["error"] == "" {
		t.Fatal("expected error field in JSON body")
	}
}
