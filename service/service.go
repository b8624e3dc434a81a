// Package service exposes the reporter's operational HTTP surface: a
// liveness probe and the Prometheus metrics endpoint, served together on one
// address while a run is in progress.
package service

import (
	"context"
	"net/http"

	"github.com/ethereum/go-ethereum/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

type Service struct {
	log    log.Logger
	server *http.Server
}

func New(logger log.Logger) *Service {
	return &Service{
		log: logger,
	}
}

// Start serves /healthz and /metrics on addr until Shutdown or listen failure
func (s *Service) Start(ctx context.Context, addr string) error {
	s.log.Info("starting service", "addr", addr)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
	})
	s.server = &http.Server{
		Handler: c.Handler(s.handler()),
		Addr:    addr,
	}
	return s.server.ListenAndServe()
}

func (s *Service) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	s.log.Info("service shutting down")
	return s.server.Shutdown(ctx)
}

func (s *Service) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func (s *Service) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.log.Debug("Received health check request", "path", r.URL.Path)
	w.Write([]byte("OK")) //nolint:errcheck
}
