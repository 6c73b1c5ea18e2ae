package httpserver

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Server wraps the HTTP server setup for the storefront gateway.
type Server struct {
	httpServer *http.Server
	logger     *log.Logger
}

// New builds a Server with the gateway routes. db may be nil when carts are
// file-backed; readiness then skips the database probe.
func New(addr string, logger *log.Logger, db *pgxpool.Pool, deps Deps, allowedOrigins []string) (*Server, error) {
	router := buildRouter(logger, db, deps, allowedOrigins)

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		httpServer: httpSrv,
		logger:     logger,
	}, nil
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
