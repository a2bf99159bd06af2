// Package http exposes the ledger as a small JSON API.
package http

import (
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"despesas/internal/log"
	"despesas/internal/services"
)

// Server wraps http.Server with the ledger it serves.
type Server struct {
	http.Server
	ledger      *services.Ledger
	logger      *log.Logger
	limiter     *writeLimiter
	metrics     *securityMetrics
}

// NewServer configures routes and middleware, returning a ready-to-run Server.
// writesPerMinute bounds state-changing requests per client IP; zero disables it.
func NewServer(addr string, ledger *services.Ledger, logger *log.Logger, writesPerMinute int) *Server {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	logger = logger.WithComponent(log.ComponentHTTP)

	mux := http.NewServeMux()
	s := &Server{
		Server: http.Server{
			Addr:              addr,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		ledger:      ledger,
		logger:      logger,
		limiter:     newWriteLimiter(writesPerMinute),
		metrics:     &securityMetrics{},
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /api/expenses", s.handleListExpenses)
	mux.HandleFunc("POST /api/expenses", s.handleCreateExpense)
	mux.HandleFunc("GET /api/expenses/{id}", s.handleEditDraft)
	mux.HandleFunc("PUT /api/expenses/{id}", s.handleUpdateExpense)
	mux.HandleFunc("DELETE /api/expenses/{id}", s.handleDeleteExpense)

	mux.HandleFunc("GET /api/categories", s.handleListCategories)
	mux.HandleFunc("POST /api/categories", s.handleAddCategory)
	mux.HandleFunc("PUT /api/categories/{index}", s.handleRenameCategory)
	mux.HandleFunc("DELETE /api/categories/{index}", s.handleRemoveCategory)

	mux.HandleFunc("GET /api/report", s.handleReport)
	mux.HandleFunc("GET /api/payers", s.handlePayers)

	var handler http.Handler = mux
	handler = s.withRateLimit(handler)
	handler = log.Middleware(logger, requestID)(handler)
	handler = withSecurityHeaders(s.metrics, logger)(handler)
	s.Handler = handler

	return s
}

// withRateLimit throttles requests that change state.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead {
			next.ServeHTTP(w, r)
			return
		}
		clientIP := extractClientIP(r)
		ok, retry := s.limiter.allow(clientIP)
		if !ok {
			atomic.AddInt64(&s.metrics.rateLimitHits, 1)
			log.FromContext(r.Context()).WarnContext(r.Context(), "Rate limit exceeded",
				log.FieldClientIP, clientIP, log.FieldMethod, r.Method, log.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(retry)))
			writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: msgTooManyWrites})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
