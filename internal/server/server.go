// Package server exposes input preparation over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/felixge/httpsnoop"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/chrissnell/dikeprep/internal/prepare"
	"github.com/chrissnell/dikeprep/pkg/config"
)

// maxBodySize bounds request bodies
const maxBodySize = 16 << 20

// ConfigStore gives access to stored run configurations
type ConfigStore interface {
	LoadNamedConfig(name string) (*config.ConfigData, error)
	ConfigNames() ([]string, error)
}

// Server serves the preparation endpoints
type Server struct {
	Server   http.Server
	store    ConfigStore
	preparer *prepare.Preparer
	logger   *zap.SugaredLogger
}

// New creates a server listening on addr. The store is optional; without one the stored
// configuration endpoints are not registered.
func New(addr string, store ConfigStore, logger *zap.SugaredLogger) *Server {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	s := &Server{
		store:    store,
		preparer: prepare.NewPreparer(logger),
		logger:   logger,
	}
	s.Server.Addr = addr
	s.Server.Handler = s.setupRouter()
	s.Server.ReadHeaderTimeout = 10 * time.Second
	return s
}

// Handler returns the routed handler
func (s *Server) Handler() http.Handler {
	return s.Server.Handler
}

// Run serves until the context is cancelled
func (s *Server) Run(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.logger.Infow("starting HTTP server", "addr", s.Server.Addr)
		if err := s.Server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down the HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.Server.Shutdown(shutdownCtx)
}

// setupRouter configures the HTTP router with all endpoints
func (s *Server) setupRouter() *mux.Router {
	router := mux.NewRouter()

	router.Use(s.logRequests)
	router.Use(handlers.RecoveryHandler(handlers.PrintRecoveryStack(false)))
	router.Use(handlers.CompressHandler)

	router.HandleFunc("/healthz", s.health).Methods(http.MethodGet)
	router.HandleFunc("/prepare", s.prepare).Methods(http.MethodPost)
	router.HandleFunc("/zones/coordinates", s.zoneCoordinates).Methods(http.MethodPost)
	router.HandleFunc("/defaults/{method}", s.defaults).Methods(http.MethodGet)

	// Stored configurations are only available with a store
	if s.store != nil {
		router.HandleFunc("/configs", s.configNames).Methods(http.MethodGet)
		router.HandleFunc("/configs/{name}/bundle", s.storedBundle).Methods(http.MethodGet)
	}

	return router
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)
		s.logger.Debugw("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", m.Code,
			"duration_ms", m.Duration.Milliseconds(),
			"size", m.Written,
			"remote_addr", r.RemoteAddr)
	})
}
