package registry

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// Result is the outcome of a Handler: either content or a failure, never both.
type Result struct {
	content []mcp.Content
	err     error
}

// Success wraps handler content.
func Success(content ...mcp.Content) Result {
	if content == nil {
		content = []mcp.Content{}
	}
	return Result{content: content}
}

// Text is a success carrying a single text item.
func Text(text string) Result {
	return Success(mcp.NewTextContent(text))
}

// JSON is a success carrying v as indented JSON text.
// A value that cannot be encoded becomes a failure.
func JSON(v any) Result {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return Failure(fmt.Errorf("encode result: %w", err))
	}
	return Text(string(b))
}

// Failure reports that the handler could not produce content.
func Failure(err error) Result {
	if err == nil {
		err = fmt.Errorf("handler failed without an error")
	}
	return Result{err: err}
}

// Failed reports whether r is a failure.
func (r Result) Failed() bool { return r.err != nil }

// Err returns the failure, or nil on success.
func (r Result) Err() error { return r.err }

// Content returns the success content, or nil on failure.
func (r Result) Content() []mcp.Content { return r.content }
