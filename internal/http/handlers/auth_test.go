package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/Medinhoo/liar/internal/game"
	"github.com/Medinhoo/liar/internal/service"

	"github.com/gin-gonic/gin"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	service.InitJWT("test-secret")

	h := NewHandler(game.NewRegistry())
	r := gin.New()
	r.POST("/api/v1/auth", h.Auth)
	return r
}

func TestAuthIssuesToken(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth", strings.NewReader(`{"name":"  Alice  "}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Token    string `json:"token"`
		PlayerID string `json:"player_id"`
		Name     string `json:"name"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Token == "" || resp.PlayerID == "" {
		t.Fatalf("response = %+v", resp)
	}
	if resp.Name != "Alice" {
		t.Fatalf("name = %q; want trimmed %q", resp.Name, "Alice")
	}

	playerID, name, err := service.ParseJWT(resp.Token)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if playerID != resp.PlayerID || name != "Alice" {
		t.Fatalf("token claims = %q, %q", playerID, name)
	}
}

func TestAuthValidation(t *testing.T) {
	r := newTestRouter()

	cases := []struct {
		name string
		body string
	}{
		{"empty body", ``},
		{"not json", `not-json`},
		{"missing name", `{}`},
		{"blank name", `{"name":"   "}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d; want 400", w.Code)
			}
		})
	}
}

func TestAuthTruncatesLongNames(t *testing.T) {
	r := newTestRouter()

	cases := []struct {
		name  string
		input string
	}{
		{"ascii", strings.Repeat("x", maxNameLength+10)},
		{"multi-byte", strings.Repeat("é", maxNameLength+10)},
		{"emoji", strings.Repeat("🃏", maxNameLength+10)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth", strings.NewReader(`{"name":"`+tc.input+`"}`))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d", w.Code)
			}

			var resp struct {
				Name string `json:"name"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got := utf8.RuneCountInString(resp.Name); got != maxNameLength {
				t.Fatalf("name rune count = %d; want %d", got, maxNameLength)
			}
			// truncation must never split a rune
			if !utf8.ValidString(resp.Name) {
				t.Fatalf("name %q is not valid UTF-8", resp.Name)
			}
		})
	}
}
