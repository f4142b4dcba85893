// Package server exposes the advisor over HTTP.
package server

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

const (
	requestIDHeader = "X-Request-Id"
	shutdownTimeout = 10 * time.Second
)

// Server is the HTTP front of the advisor.
type Server struct {
	addr    string
	handler http.Handler
	log     zerolog.Logger
}

// New wires routes and middleware around advisor.
func New(addr string, advisor Advisor, log zerolog.Logger) *Server {
	return &Server{
		addr:    addr,
		handler: Handler(advisor, log),
		log:     log,
	}
}

// Handler returns the routed and instrumented HTTP handler.
func Handler(advisor Advisor, log zerolog.Logger) http.Handler {
	if log.GetLevel() == zerolog.Disabled {
		// zerolog never stores a disabled logger in a context, which would let
		// request code fall through to the global logger.
		log = zerolog.New(io.Discard)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat", chatHandler("/chat", advisor.Chat))
	mux.HandleFunc("POST /chat/fruit", chatHandler("/chat/fruit", advisor.FruitChat))
	mux.HandleFunc("GET /healthz", healthHandler)
	mux.HandleFunc("GET /schema", schemaHandler(BuildSchemas()))

	var h http.Handler = mux
	h = hlog.AccessHandler(accessLog)(h)
	h = requestID(h)
	h = hlog.NewHandler(log)(h)
	return h
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", ln.Addr().String()).Msg("HTTP server listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info().Msg("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

// requestID tags every request and its logger with a UUID, reusing the
// caller's X-Request-Id when present.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		hlog.FromRequest(r).UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("request_id", id)
		})
		next.ServeHTTP(w, r)
	})
}

func accessLog(r *http.Request, status, size int, duration time.Duration) {
	hlog.FromRequest(r).Info().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", duration).
		Msg("HTTP request")
}
