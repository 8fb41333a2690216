package dispatcher

import (
	"context"
	"time"
)

// State is a step in a call's lifecycle.
type State int

const (
	StateReceived State = iota
	StateValidating
	StateValidationFailed
	StateDispatching
	StateHandlerSucceeded
	StateHandlerFailed
	StateResponded
)

func (s State) String() string {
	switch s {
	case StateReceived:
		return "received"
	case StateValidating:
		return "validating"
	case StateValidationFailed:
		return "validation_failed"
	case StateDispatching:
		return "dispatching"
	case StateHandlerSucceeded:
		return "handler_succeeded"
	case StateHandlerFailed:
		return "handler_failed"
	case StateResponded:
		return "responded"
	default:
		return "unknown"
	}
}

// Kind classifies a handled failure.
type Kind int

const (
	KindNone Kind = iota
	KindMissingArguments
	KindUnknownTool
	KindInvalidArguments
	KindServerError
)

// String returns the label placed in the envelope's "error" field.
func (k Kind) String() string {
	switch k {
	case KindMissingArguments:
		return "Missing arguments"
	case KindUnknownTool:
		return "Unknown tool"
	case KindInvalidArguments:
		return "Validation error"
	case KindServerError:
		return "Server error"
	default:
		return ""
	}
}

// Outcome is a short, label-friendly form of a call's result.
func (k Kind) Outcome() string {
	switch k {
	case KindNone:
		return "success"
	case KindMissingArguments:
		return "missing_arguments"
	case KindUnknownTool:
		return "unknown_tool"
	case KindInvalidArguments:
		return "invalid_arguments"
	default:
		return "server_error"
	}
}

// TransitionEvent describes one state change.
type TransitionEvent struct {
	Tool string
	From State
	To   State
}

// CompletionEvent describes a finished call.
type CompletionEvent struct {
	Tool     string
	Kind     Kind
	Duration time.Duration
	Err      error
}

// Hooks are optional observability callbacks. They run synchronously on the
// calling goroutine.
type Hooks struct {
	OnTransition func(context.Context, TransitionEvent)
	OnComplete   func(context.Context, CompletionEvent)
}
