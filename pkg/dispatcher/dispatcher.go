package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/trailhead/internal/logging"
	"github.com/aretw0/trailhead/pkg/registry"
	"github.com/aretw0/trailhead/pkg/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

var (
	// ErrMissingArguments is reported when a call carries no argument payload.
	ErrMissingArguments = errors.New("arguments are required")
	// ErrUnknownTool is reported when a call names a tool that is not registered.
	ErrUnknownTool = errors.New("unknown tool")
)

const genericFailure = "Unknown error"

// ToolCall is one inbound invocation. A nil Arguments map means the payload
// was absent, which is not the same as an empty object.
type ToolCall struct {
	Name      string
	Arguments map[string]any
}

// Dispatcher validates calls against a registry and invokes the matching handler.
type Dispatcher struct {
	registry *registry.Registry
	logger   *slog.Logger
	hooks    Hooks
	now      func() time.Time
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithHooks registers observability callbacks.
func WithHooks(hooks Hooks) Option {
	return func(d *Dispatcher) {
		d.hooks = hooks
	}
}

// New creates a Dispatcher over reg.
func New(reg *registry.Registry, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry: reg,
		logger:   logging.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ListTools returns the discovery form of every registered tool in
// registration order. It has no side effects.
func (d *Dispatcher) ListTools() []mcp.Tool {
	descs := d.registry.List()
	tools := make([]mcp.Tool, len(descs))
	for i, desc := range descs {
		tools[i] = mcp.NewToolWithRawSchema(desc.Name.String(), desc.Description, desc.Schema.JSONSchema())
	}
	return tools
}

// CallTool runs call to completion and returns its envelope.
func (d *Dispatcher) CallTool(ctx context.Context, call ToolCall) *mcp.CallToolResult {
	c := &run{d: d, ctx: ctx, call: call, state: StateReceived, started: d.now()}
	result := c.execute()
	c.moveTo(StateResponded)

	if d.hooks.OnComplete != nil {
		d.hooks.OnComplete(ctx, CompletionEvent{
			Tool:     call.Name,
			Kind:     c.kind,
			Duration: d.now().Sub(c.started),
			Err:      c.err,
		})
	}
	return result
}

// run tracks a single call through its states.
type run struct {
	d       *Dispatcher
	ctx     context.Context
	call    ToolCall
	state   State
	kind    Kind
	err     error
	started time.Time
}

func (c *run) moveTo(next State) {
	prev := c.state
	c.state = next
	c.d.logger.Debug("tool call transition", "tool", c.call.Name, "from", prev.String(), "state", next.String())
	if c.d.hooks.OnTransition != nil {
		c.d.hooks.OnTransition(c.ctx, TransitionEvent{Tool: c.call.Name, From: prev, To: next})
	}
}

func (c *run) execute() *mcp.CallToolResult {
	if c.call.Arguments == nil {
		c.moveTo(StateValidationFailed)
		return c.fail(KindMissingArguments, ErrMissingArguments, errorBody{
			Message: "Arguments are required",
		})
	}

	c.moveTo(StateValidating)
	desc, ok := c.d.registry.Lookup(c.call.Name)
	if !ok {
		c.moveTo(StateValidationFailed)
		return c.fail(KindUnknownTool, fmt.Errorf("%w: %s", ErrUnknownTool, c.call.Name), errorBody{
			Message: fmt.Sprintf("Unknown tool: %s", c.call.Name),
			Tool:    c.call.Name,
		})
	}

	args, err := desc.Schema.Validate(c.call.Arguments)
	if err != nil {
		c.moveTo(StateValidationFailed)
		violations := schema.Violations(err)
		if violations == nil {
			// The validator itself broke; that is not the caller's fault.
			return c.fail(KindServerError, err, errorBody{Message: messageOf(err)})
		}
		return c.fail(KindInvalidArguments, err, errorBody{Details: violations})
	}

	c.moveTo(StateDispatching)
	res := c.invoke(desc.Handler, args)
	if res.Failed() {
		c.moveTo(StateHandlerFailed)
		return c.fail(KindServerError, res.Err(), errorBody{Message: messageOf(res.Err())})
	}

	c.moveTo(StateHandlerSucceeded)
	c.d.logger.Info("tool call succeeded", "tool", c.call.Name, "duration", c.d.now().Sub(c.started))
	return &mcp.CallToolResult{Content: res.Content()}
}

// invoke calls the handler, converting a panic into a failure.
func (c *run) invoke(h registry.Handler, args schema.Args) (res registry.Result) {
	defer func() {
		if p := recover(); p != nil {
			c.d.logger.Error("tool handler panicked", "tool", c.call.Name, "panic", p)
			res = registry.Failure(panicError(p))
		}
	}()
	return h(c.ctx, args)
}

func (c *run) fail(kind Kind, err error, body errorBody) *mcp.CallToolResult {
	c.kind = kind
	c.err = err
	body.Error = kind.String()

	level := slog.LevelWarn
	if kind == KindServerError {
		level = slog.LevelError
	}
	c.d.logger.Log(c.ctx, level, "tool call failed", "tool", c.call.Name, "kind", kind.Outcome(), "error", err)

	return errorEnvelope(body)
}

func messageOf(err error) string {
	if err == nil || err.Error() == "" {
		return genericFailure
	}
	return err.Error()
}

func panicError(p any) error {
	switch v := p.(type) {
	case error:
		return v
	case string:
		return errors.New(v)
	default:
		return fmt.Errorf("%v", v)
	}
}
