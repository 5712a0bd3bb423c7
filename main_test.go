package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	healthHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %q", body["status"])
	}
}

func TestBuildSource_CSVDefault(t *testing.T) {
	t.Setenv("DATA_SOURCE", "")
	t.Setenv("DATA_DIR", t.TempDir())

	source, cleanup, err := buildSource()
	if err != nil {
		t.Fatal(err)
	}
	defer cleanup()

	if source == nil {
		t.Fatal("expected a CSV source")
	}
}

func TestBuildSource_UnknownKind(t *testing.T) {
	t.Setenv("DATA_SOURCE", "oracle")

	if _, _, err := buildSource(); err == nil {
		t.Error("expected an error for an unknown DATA_SOURCE")
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("SKILLGAP_TEST_ENV", "valeur")

	if got := getEnv("SKILLGAP_TEST_ENV", "def"); got != "valeur" {
		t.Errorf("expected valeur, got %q", got)
	}
	if got := getEnv("SKILLGAP_TEST_ENV_ABSENT", "def"); got != "def" {
		t.Errorf("expected fallback, got %q", got)
	}
}
