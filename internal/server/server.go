package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/StavLobel/whats-the-chance-game/internal/challenge"
	"github.com/StavLobel/whats-the-chance-game/internal/gamestats"
	"github.com/StavLobel/whats-the-chance-game/internal/handler"
	"github.com/StavLobel/whats-the-chance-game/internal/identity"
	"github.com/StavLobel/whats-the-chance-game/internal/logger"
	"github.com/StavLobel/whats-the-chance-game/internal/metrics"
	"github.com/StavLobel/whats-the-chance-game/internal/sse"
)

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(port int, provider identity.Provider, trustedProxies []string, st handler.Pinger, challengeService challenge.Service, gameStatsService gamestats.Service, hub *sse.Hub) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(provider, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(st))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Challenge routes
		challengeHandler := handler.NewChallengeHandler(challengeService)
		r.Route("/challenges", func(r chi.Router) {
			r.Post("/", challengeHandler.HandleCreateChallenge)
			r.Get("/user/{userID}", challengeHandler.HandleListChallenges)
			r.Get("/stats/{userID}", challengeHandler.HandleChallengeStats)
			r.Get("/{id}", challengeHandler.HandleGetChallenge)
			r.Post("/{id}/respond", challengeHandler.HandleRespondChallenge)
			r.Post("/{id}/number", challengeHandler.HandleSubmitNumber)
			r.Post("/{id}/resolve", challengeHandler.HandleResolveChallenge)
		})

		// Game statistics routes
		gameStatsHandler := handler.NewGameStatsHandler(gameStatsService)
		r.Route("/game-stats", func(r chi.Router) {
			r.Post("/challenge-result", gameStatsHandler.HandleCreateChallengeResult)
			r.Get("/user/{userID}", gameStatsHandler.HandleGetUserStats)
			r.Get("/user/{userID}/history", gameStatsHandler.HandleGetChallengeHistory)
			r.Get("/global", gameStatsHandler.HandleGetGlobalStats)
			r.Get("/numbers/top", gameStatsHandler.HandleGetTopNumbers)
			r.Get("/numbers/{number}", gameStatsHandler.HandleGetNumberStats)
			r.Get("/ranges/top", gameStatsHandler.HandleGetTopRanges)
			r.Get("/ranges/{rangeMin}/{rangeMax}", gameStatsHandler.HandleGetRangeStats)
			r.Get("/analytics/summary", gameStatsHandler.HandleGetAnalyticsSummary)

			r.Route("/social", func(r chi.Router) {
				r.Get("/most-challenged", gameStatsHandler.HandleGetMostChallenged)
				r.Get("/most-active-pairs", gameStatsHandler.HandleGetMostActivePairs)
				r.Get("/user/{userID}/friends-activity", gameStatsHandler.HandleGetFriendsActivity)
				r.Get("/user/{userID}/challenge-recipients", gameStatsHandler.HandleGetChallengeRecipients)
			})
		})

		// Realtime event stream
		r.Get("/events", sse.Handler(hub))
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Flush passes through so the event stream can push messages incrementally
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		// Use HasPrefix to catch potential variations (e.g. /healthz/)
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		// Generate unique request ID
		requestID := logger.GenerateRequestID()

		// Add request ID to context
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		// Get scoped logger
		log := logger.FromContext(ctx)

		// Log request start with details
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		// Wrap response writer to capture status code
		rw := newResponseWriter(w)

		// Process request
		next.ServeHTTP(rw, r)

		// Log request completion with metrics
		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
