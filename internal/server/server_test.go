package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/StavLobel/whats-the-chance-game/internal/challenge"
	"github.com/StavLobel/whats-the-chance-game/internal/concurrency"
	"github.com/StavLobel/whats-the-chance-game/internal/event"
	"github.com/StavLobel/whats-the-chance-game/internal/gamestats"
	"github.com/StavLobel/whats-the-chance-game/internal/identity"
	"github.com/StavLobel/whats-the-chance-game/internal/sse"
	"github.com/StavLobel/whats-the-chance-game/internal/store"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	provider := identity.NewJWTProvider(testSecret, testIssuer)
	st := store.NewMemory()
	challengeService := challenge.NewService(st, event.NewMemoryBus(), nil, nil)
	gameStatsService := gamestats.NewService(st, concurrency.NewLockManager(), nil)
	hub := sse.NewHub()
	hub.Start()
	t.Cleanup(hub.Stop)

	srv := NewServer(0, provider, nil, st, challengeService, gameStatsService, hub)
	return srv.httpServer.Handler
}

func TestServerRouting(t *testing.T) {
	router := newTestServer(t)
	token := testToken(t, "alice", time.Hour)

	tests := []struct {
		name           string
		method         string
		target         string
		body           string
		withToken      bool
		expectedStatus int
	}{
		{
			name:           "Healthz Is Public",
			method:         "GET",
			target:         "/healthz",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Readyz Is Public",
			method:         "GET",
			target:         "/readyz",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Version Is Public",
			method:         "GET",
			target:         "/version",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Metrics Is Public",
			method:         "GET",
			target:         "/metrics",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "API Rejects Anonymous",
			method:         "GET",
			target:         "/api/v1/game-stats/global",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Create Challenge Routes Through",
			method:         "POST",
			target:         "/api/v1/challenges",
			body:           `{"from_user":"alice","to_user":"bob","description":"moo at the next meeting"}`,
			withToken:      true,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Empty Global Stats",
			method:         "GET",
			target:         "/api/v1/game-stats/global",
			withToken:      true,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Own Challenge List",
			method:         "GET",
			target:         "/api/v1/challenges/user/alice",
			withToken:      true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Unknown Route",
			method:         "GET",
			target:         "/api/v1/nothing-here",
			withToken:      true,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body *strings.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			} else {
				body = strings.NewReader("")
			}

			req := httptest.NewRequest(tt.method, tt.target, body)
			if tt.withToken {
				req.Header.Set(HeaderAuthorization, "Bearer "+token)
			}
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d (body: %s)", tt.expectedStatus, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestServerRouting_TokenQueryParam(t *testing.T) {
	router := newTestServer(t)
	token := testToken(t, "alice", time.Hour)

	req := httptest.NewRequest("GET", "/api/v1/challenges/user/alice?token="+token, nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200 via query param token, got %d (body: %s)", rec.Code, rec.Body.String())
	}
}

func TestServerRouting_SecurityHeaders(t *testing.T) {
	router := newTestServer(t)

	req := httptest.NewRequest("GET", "/healthz", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if got := rec.Header().Get(HeaderContentType); got != HeaderValueNoSniff {
		t.Errorf("expected %s header on every response, got %q", HeaderContentType, got)
	}
}
