// Package server exposes the timing engine over a JSON API. Every client
// gets its own session (its own buffer chain); the closed event set is
// enforced at the decode boundary so invalid events never reach the engine.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"stavis/internal/session"
	"stavis/internal/store"
	"stavis/internal/timing"
)

// Server is the HTTP front end for the engine.
type Server struct {
	addr     string
	manager  *session.Manager
	journal  *store.Journal // nil disables journaling
	log      *zap.Logger
	listener net.Listener

	waveMu   sync.Mutex
	waveform *timing.Waveform // cached; pure function of the constants
}

// New creates a server. journal may be nil.
func New(addr string, manager *session.Manager, journal *store.Journal, log *zap.Logger) *Server {
	return &Server{
		addr:    addr,
		manager: manager,
		journal: journal,
		log:     log,
	}
}

// InvalidateWaveform drops the cached waveform after a config reload.
func (s *Server) InvalidateWaveform() {
	s.waveMu.Lock()
	s.waveform = nil
	s.waveMu.Unlock()
}

func (s *Server) cachedWaveform() timing.Waveform {
	s.waveMu.Lock()
	defer s.waveMu.Unlock()
	if s.waveform == nil {
		c := s.manager.Constants()
		w := timing.GenerateWaveform(c.WindowEnd, c.Step, c.ClockPeriod, c.LaunchClockDelay)
		s.waveform = &w
	}
	return *s.waveform
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/sessions", s.handleCreateSession)
	mux.HandleFunc("DELETE /api/sessions/{id}", s.handleDeleteSession)
	mux.HandleFunc("POST /api/sessions/{id}/events", s.handleEvent)
	mux.HandleFunc("GET /api/sessions/{id}/breakdown", s.handleBreakdown)
	mux.HandleFunc("GET /api/sessions/{id}/report", s.handleReport)
	mux.HandleFunc("GET /api/waveform", s.handleWaveform)
	mux.HandleFunc("GET /api/healthz", s.handleHealth)
	return s.logRequests(mux)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("elapsed", time.Since(start)))
	})
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listener = ln

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("listening", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// Addr returns the bound listen address, useful when addr was ":0".
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.addr
	}
	return s.listener.Addr().String()
}
