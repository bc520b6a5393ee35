package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Medinhoo/liar/internal/game"

	"github.com/gin-gonic/gin"
)

func TestHealthWithoutDatabase(t *testing.T) {
	gin.SetMode(gin.TestMode)

	registry := game.NewRegistry()
	registry.CreateRoom("p1", "Alice")
	registry.CreateRoom("p2", "Bob")

	h := NewHealthHandler(nil, registry, "test")
	r := gin.New()
	r.GET("/health", h.Health)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Status  string `json:"status"`
		Version string `json:"version"`
		Rooms   int    `json:"rooms"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "ok" || resp.Version != "test" || resp.Rooms != 2 {
		t.Fatalf("response = %+v", resp)
	}
}

func TestLiveness(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewHealthHandler(nil, game.NewRegistry(), "test")
	r := gin.New()
	r.GET("/healthz", h.Liveness)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestReadinessWithoutDatabase(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewHealthHandler(nil, game.NewRegistry(), "test")
	r := gin.New()
	r.GET("/readyz", h.Readiness)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "healthy" {
		t.Fatalf("status = %q", resp.Status)
	}
	if resp.Checks["active_rooms"] != "0" {
		t.Fatalf("active_rooms = %q", resp.Checks["active_rooms"])
	}
	if _, ok := resp.Checks["database"]; ok {
		t.Fatal("database check reported with match history disabled")
	}
}
