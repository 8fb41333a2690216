// Package registry holds the immutable table of tools a server advertises.
package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/trailhead/pkg/schema"
)

// ErrInvalidDescriptor is returned by New when a descriptor cannot be registered.
var ErrInvalidDescriptor = errors.New("invalid tool descriptor")

// Handler implements a tool. It receives arguments that already passed the
// tool's schema and reports its outcome as a Result instead of an error.
type Handler func(ctx context.Context, args schema.Args) Result

// Descriptor is one advertised tool.
type Descriptor struct {
	Name        ToolName
	Description string
	Schema      *schema.Object
	Handler     Handler
}

// Registry maps tool names to descriptors.
// It is built once and never mutated, so concurrent reads need no locking.
type Registry struct {
	order []ToolName
	tools map[ToolName]Descriptor
}

// New builds a registry from descriptors, preserving their order.
// Names must belong to the known tool set and appear at most once.
func New(descriptors ...Descriptor) (*Registry, error) {
	r := &Registry{
		order: make([]ToolName, 0, len(descriptors)),
		tools: make(map[ToolName]Descriptor, len(descriptors)),
	}

	for _, d := range descriptors {
		switch {
		case !d.Name.Valid():
			return nil, fmt.Errorf("%w: unknown tool name %q", ErrInvalidDescriptor, d.Name)
		case d.Schema == nil:
			return nil, fmt.Errorf("%w: %s has no schema", ErrInvalidDescriptor, d.Name)
		case d.Handler == nil:
			return nil, fmt.Errorf("%w: %s has no handler", ErrInvalidDescriptor, d.Name)
		}
		if _, dup := r.tools[d.Name]; dup {
			return nil, fmt.Errorf("%w: %s registered twice", ErrInvalidDescriptor, d.Name)
		}
		r.tools[d.Name] = d
		r.order = append(r.order, d.Name)
	}

	return r, nil
}

// List returns every descriptor in registration order.
func (r *Registry) List() []Descriptor {
	out := make([]Descriptor, len(r.order))
	for i, name := range r.order {
		out[i] = r.tools[name]
	}
	return out
}

// Lookup finds a descriptor by its wire name.
func (r *Registry) Lookup(name string) (Descriptor, bool) {
	d, ok := r.tools[ToolName(name)]
	return d, ok
}

// Len reports how many tools are registered.
func (r *Registry) Len() int {
	return len(r.order)
}
