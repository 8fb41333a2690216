package tools

import (
	"context"
	"log/slog"

	"github.com/aretw0/trailhead/internal/logging"
	"github.com/aretw0/trailhead/internal/nps"
	"github.com/aretw0/trailhead/pkg/registry"
)

// Client is the subset of the NPS API the tools use.
type Client interface {
	Parks(ctx context.Context, p nps.Params) (*nps.Response[nps.Park], error)
	Park(ctx context.Context, parkCode string) (*nps.Park, error)
	Alerts(ctx context.Context, p nps.Params) (*nps.Response[nps.Alert], error)
	VisitorCenters(ctx context.Context, p nps.Params) (*nps.Response[nps.VisitorCenter], error)
	Campgrounds(ctx context.Context, p nps.Params) (*nps.Response[nps.Campground], error)
	Events(ctx context.Context, p nps.EventParams) (*nps.Response[nps.Event], error)
}

var _ Client = (*nps.Client)(nil)

// Toolset binds the tool handlers to a Client.
type Toolset struct {
	client Client
	logger *slog.Logger
}

// Option configures a Toolset.
type Option func(*Toolset)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Toolset) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// New creates a Toolset over client.
func New(client Client, opts ...Option) *Toolset {
	t := &Toolset{client: client, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Descriptors returns one descriptor per tool, in canonical order.
func (t *Toolset) Descriptors() []registry.Descriptor {
	return []registry.Descriptor{
		{
			Name:        registry.FindParks,
			Description: "Search for national parks by state, keyword, or activity. The activities filter applies to the returned page: total counts parks before it and matched counts the parks kept.",
			Schema:      findParksSchema,
			Handler:     t.findParks,
		},
		{
			Name:        registry.GetParkDetails,
			Description: "Get detailed information about a national park: contacts, fees, hours and images.",
			Schema:      parkDetailsSchema,
			Handler:     t.parkDetails,
		},
		{
			Name:        registry.GetAlerts,
			Description: "Get current alerts (closures, hazards, notices) for national parks.",
			Schema:      listSchema,
			Handler:     t.alerts,
		},
		{
			Name:        registry.GetVisitorCenters,
			Description: "Get visitor centers and their hours for national parks.",
			Schema:      listSchema,
			Handler:     t.visitorCenters,
		},
		{
			Name:        registry.GetCampgrounds,
			Description: "Get campgrounds, sites and reservation details for national parks.",
			Schema:      listSchema,
			Handler:     t.campgrounds,
		},
		{
			Name:        registry.GetEvents,
			Description: "Get upcoming events at national parks, optionally within a date range. Results begin exactly at start, which need not be a multiple of limit.",
			Schema:      eventsSchema,
			Handler:     t.events,
		},
	}
}

// Registry builds the immutable registry of every tool.
func (t *Toolset) Registry() (*registry.Registry, error) {
	return registry.New(t.Descriptors()...)
}

// NewRegistry is shorthand for New(client, opts...).Registry().
func NewRegistry(client Client, opts ...Option) (*registry.Registry, error) {
	return New(client, opts...).Registry()
}
