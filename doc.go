/*
Package trailhead is an MCP tool server for the U.S. National Park Service
data API.

It exposes six read-only tools (findParks, getParkDetails, getAlerts,
getVisitorCenters, getCampgrounds and getEvents) over a stateless JSON-RPC
endpoint. Every request is one exchange: a fresh session validates the call
against the tool's schema, runs the handler and is released, so nothing is
shared between requests except the immutable tool registry.

# Layout

  - pkg/schema: argument schemas, rendered to JSON Schema and enforced from the same document.
  - pkg/registry: the closed set of tools and their descriptors.
  - pkg/dispatcher: the validate-then-dispatch state machine and its error envelopes.
  - pkg/adapters/mcp: JSON-RPC framing and per-exchange sessions.
  - pkg/adapters/http: the HTTP binding (/mcp, /health, /metrics).
  - pkg/observability: Prometheus metrics fed by dispatcher hooks.
  - internal/nps, internal/tools: the upstream client and the tool handlers.

# Usage

	trailhead serve --port 3000
	trailhead tools --format yaml
	trailhead call findParks '{"stateCode":"CA","limit":5}'
*/
package trailhead
