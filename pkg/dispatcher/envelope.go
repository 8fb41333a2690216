package dispatcher

import (
	"encoding/json"

	"github.com/aretw0/trailhead/pkg/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// errorBody is the JSON object carried by every error envelope.
type errorBody struct {
	Error   string                    `json:"error"`
	Message string                    `json:"message,omitempty"`
	Tool    string                    `json:"tool,omitempty"`
	Details []*schema.ValidationError `json:"details,omitempty"`
}

func errorEnvelope(body errorBody) *mcp.CallToolResult {
	text, err := json.MarshalIndent(body, "", "  ")
	if err != nil {
		// Details may hold values that do not encode; fall back to the bare kind.
		text, _ = json.MarshalIndent(errorBody{Error: body.Error, Message: body.Message, Tool: body.Tool}, "", "  ")
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(string(text))},
		IsError: true,
	}
}
