package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/aretw0/trailhead/internal/logging"
	"github.com/aretw0/trailhead/pkg/adapters/mcp"
	"github.com/aretw0/trailhead/pkg/dispatcher"
	"github.com/aretw0/trailhead/pkg/observability"
	"github.com/aretw0/trailhead/pkg/registry"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MaxBodyBytes caps the size of a single JSON-RPC message.
const MaxBodyBytes = 4 << 20

// Server serves the MCP endpoint over HTTP.
type Server struct {
	registry *registry.Registry
	logger   *slog.Logger
	metrics  *observability.Metrics
	gatherer prometheus.Gatherer
	name     string
	version  string
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics records exchanges in m and serves g on /metrics.
// A nil gatherer leaves /metrics unrouted.
func WithMetrics(m *observability.Metrics, g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = m
		s.gatherer = g
	}
}

// WithServerInfo sets the name and version reported by initialize.
func WithServerInfo(name, version string) Option {
	return func(s *Server) {
		s.name = name
		s.version = version
	}
}

// NewServer creates a Server over reg.
func NewServer(reg *registry.Registry, opts ...Option) *Server {
	s := &Server{
		registry: reg,
		logger:   logging.NewNop(),
		name:     "trailhead",
		version:  "dev",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewHandler creates the HTTP handler for reg.
func NewHandler(reg *registry.Registry, opts ...Option) http.Handler {
	return NewServer(reg, opts...).Handler()
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(s.recoverer)
	r.Use(enableCORS)

	r.Get("/health", s.health)
	r.Route("/mcp", func(r chi.Router) {
		r.Post("/", s.handleMCP)
		r.Get("/", s.methodNotAllowed)
		r.Delete("/", s.methodNotAllowed)
		r.MethodNotAllowed(s.methodNotAllowed)
	})

	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "healthy"}); err != nil {
		s.logger.Error("health response encode failed", "error", err)
	}
}

func (s *Server) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	s.write(w, mcp.MethodNotAllowed())
}

// handleMCP runs one exchange through a fresh session.
func (s *Server) handleMCP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.logger.Warn("request body too large", "limit", tooLarge.Limit)
			s.write(w, mcp.ProtocolError(nil, mcpgo.INVALID_REQUEST, "Request body too large"))
			return
		}
		s.logger.Warn("failed to read request body", "error", err)
		s.write(w, mcp.ProtocolError(nil, mcpgo.PARSE_ERROR, "Parse error"))
		return
	}

	s.metrics.SessionOpened()
	session := mcp.NewSession(s.registry,
		mcp.WithLogger(s.logger),
		mcp.WithServerInfo(s.name, s.version),
		mcp.WithDispatcherOptions(dispatcher.WithHooks(s.metrics.DispatcherHooks())),
		mcp.WithOnClose(s.metrics.SessionClosed),
	)
	defer session.Close()

	// The turn is pinned before the close hook is armed: a disconnect
	// releases the session but does not interrupt or skip the handler.
	turn := session.Begin()
	stop := context.AfterFunc(r.Context(), session.Close)
	defer stop()

	reply := turn.Handle(context.WithoutCancel(r.Context()), body)
	if r.Context().Err() != nil {
		s.logger.Debug("client gone, discarding reply", "exchange", session.ID())
		return
	}
	s.write(w, reply)
}

func (s *Server) write(w http.ResponseWriter, reply mcp.Reply) {
	if reply.IsError() {
		s.metrics.ProtocolError(reply.Message.Error.Code)
	}
	if reply.Message == nil {
		w.WriteHeader(reply.Status)
		return
	}

	raw, err := json.Marshal(reply.Message)
	if err != nil {
		s.logger.Error("response encode failed", "error", err)
		reply = mcp.InternalError()
		raw, _ = json.Marshal(reply.Message)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(reply.Status)
	if _, err := w.Write(raw); err != nil {
		s.logger.Debug("response write failed", "error", err)
	}
}

// recoverer turns a panic into a generic JSON-RPC error, unless a response
// has already been started.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tw := &trackingWriter{ResponseWriter: w}
		defer func() {
			p := recover()
			if p == nil {
				return
			}
			if p == http.ErrAbortHandler {
				panic(p)
			}
			s.logger.Error("request panicked", "panic", p, "path", r.URL.Path)
			if !tw.wrote {
				s.write(tw, mcp.InternalError())
			}
		}()
		next.ServeHTTP(tw, r)
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, Mcp-Protocol-Version")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// trackingWriter records whether the response has been started.
type trackingWriter struct {
	http.ResponseWriter
	wrote bool
}

func (w *trackingWriter) WriteHeader(code int) {
	w.wrote = true
	w.ResponseWriter.WriteHeader(code)
}

func (w *trackingWriter) Write(b []byte) (int, error) {
	w.wrote = true
	return w.ResponseWriter.Write(b)
}

func (w *trackingWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
