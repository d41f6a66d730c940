package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	srv *http.Server
}

func New(addr string, exposeMetrics bool, db Pinger, log *slog.Logger) *Server {
	return &Server{srv: &http.Server{
		Addr:              addr,
		Handler:           Handler(exposeMetrics, db, log),
		ReadHeaderTimeout: 5 * time.Second,
	}}
}

// Handler serves /health and, when exposeMetrics is set, /metrics.
func Handler(exposeMetrics bool, db Pinger, log *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				if log != nil {
					log.Warn("health: db ping failed", "err", err)
				}
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("DB UNAVAILABLE"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	if exposeMetrics {
		mux.Handle("/metrics", promhttp.Handler())
	}
	return mux
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
