package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/aretw0/trailhead/internal/logging"
	"github.com/aretw0/trailhead/pkg/dispatcher"
	"github.com/aretw0/trailhead/pkg/registry"
	"github.com/google/uuid"
	mcpgo "github.com/mark3labs/mcp-go/mcp"
)

// ServerInfo identifies the server in the initialize handshake.
type ServerInfo struct {
	Name    string
	Version string
}

// Session binds one Dispatcher to one exchange.
// It must not be reused once Close has been called.
type Session struct {
	id         string
	info       ServerInfo
	logger     *slog.Logger
	dispatcher atomic.Pointer[dispatcher.Dispatcher]
	dispOpts   []dispatcher.Option
	onClose    []func()
	closeOnce  sync.Once
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the structured logger for the session and its dispatcher.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithServerInfo sets the name and version reported by initialize.
func WithServerInfo(name, version string) Option {
	return func(s *Session) {
		s.info = ServerInfo{Name: name, Version: version}
	}
}

// WithDispatcherOptions forwards options to the session's Dispatcher.
func WithDispatcherOptions(opts ...dispatcher.Option) Option {
	return func(s *Session) {
		s.dispOpts = append(s.dispOpts, opts...)
	}
}

// WithOnClose registers a callback run once when the session is released.
func WithOnClose(fn func()) Option {
	return func(s *Session) {
		if fn != nil {
			s.onClose = append(s.onClose, fn)
		}
	}
}

// NewSession creates a session with a fresh Dispatcher over reg.
func NewSession(reg *registry.Registry, opts ...Option) *Session {
	s := &Session{
		id:     uuid.NewString(),
		info:   ServerInfo{Name: "trailhead", Version: "dev"},
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("exchange", s.id)

	dispOpts := append([]dispatcher.Option{dispatcher.WithLogger(s.logger)}, s.dispOpts...)
	s.dispatcher.Store(dispatcher.New(reg, dispOpts...))
	return s
}

// ID returns the exchange correlation id used in logs.
func (s *Session) ID() string { return s.id }

// Closed reports whether Close has run.
func (s *Session) Closed() bool { return s.dispatcher.Load() == nil }

// Close releases the dispatcher and runs the close callbacks.
// It is safe to call more than once and from any goroutine; only the first
// call has an effect.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.dispatcher.Store(nil)
		for _, fn := range s.onClose {
			fn()
		}
		s.logger.Debug("session closed")
	})
}

// Turn is one message pinned to the dispatcher the session held when the
// turn began. Closing the session afterwards releases it without aborting
// the turn.
type Turn struct {
	s *Session
	d *dispatcher.Dispatcher
}

// Begin pins the session's dispatcher for one message. On a closed session
// the turn answers with an internal error.
func (s *Session) Begin() Turn {
	return Turn{s: s, d: s.dispatcher.Load()}
}

// Handle decodes one JSON-RPC message and produces the reply for it.
// It never panics; failures that escape the dispatcher become a generic
// internal error.
func (s *Session) Handle(ctx context.Context, body []byte) Reply {
	return s.Begin().Handle(ctx, body)
}

// Handle runs the turn's message. See Session.Handle.
func (t Turn) Handle(ctx context.Context, body []byte) (reply Reply) {
	s, d := t.s, t.d
	defer func() {
		if p := recover(); p != nil {
			s.logger.Error("exchange panicked", "panic", p)
			reply = InternalError()
		}
	}()

	if d == nil {
		s.logger.Warn("exchange on closed session")
		return InternalError()
	}

	if !json.Valid(body) {
		return ProtocolError(nil, mcpgo.PARSE_ERROR, "Parse error")
	}
	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		return ProtocolError(nil, mcpgo.INVALID_REQUEST, "Invalid Request")
	}
	if req.JSONRPC != mcpgo.JSONRPC_VERSION || req.Method == "" {
		return ProtocolError(req.ID, mcpgo.INVALID_REQUEST, "Invalid Request")
	}

	s.logger.Debug("exchange received", "method", req.Method)

	switch mcpgo.MCPMethod(req.Method) {
	case mcpgo.MethodInitialize:
		return result(req.ID, s.initializeResult())
	case mcpgo.MethodPing:
		return result(req.ID, struct{}{})
	case mcpgo.MethodToolsList:
		return result(req.ID, mcpgo.ListToolsResult{Tools: d.ListTools()})
	case mcpgo.MethodToolsCall:
		call, err := decodeCall(req.Params)
		if err != nil {
			s.logger.Warn("invalid tools/call params", "error", err)
			return ProtocolError(req.ID, mcpgo.INVALID_PARAMS, "Invalid params")
		}
		return result(req.ID, d.CallTool(ctx, call))
	}

	if req.IsNotification() && strings.HasPrefix(req.Method, "notifications/") {
		return accepted()
	}
	return ProtocolError(req.ID, mcpgo.METHOD_NOT_FOUND, "Method not found")
}

// Exchange runs one message through a fresh session and releases it.
func Exchange(ctx context.Context, reg *registry.Registry, body []byte, opts ...Option) Reply {
	s := NewSession(reg, opts...)
	defer s.Close()
	return s.Handle(ctx, body)
}

func (s *Session) initializeResult() map[string]any {
	return map[string]any{
		"protocolVersion": mcpgo.LATEST_PROTOCOL_VERSION,
		"capabilities": map[string]any{
			"tools": map[string]any{},
		},
		"serverInfo": mcpgo.Implementation{
			Name:    s.info.Name,
			Version: s.info.Version,
		},
	}
}

type callParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

func decodeCall(raw json.RawMessage) (dispatcher.ToolCall, error) {
	var p callParams
	if len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), nullID) {
		return dispatcher.ToolCall{}, errMissingParams
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return dispatcher.ToolCall{}, err
	}
	return dispatcher.ToolCall{Name: p.Name, Arguments: p.Arguments}, nil
}
