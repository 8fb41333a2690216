package mcp

import (
	"encoding/json"
	"net/http"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
)

// CodeMethodNotAllowed is the server-defined code used when the transport
// rejects an HTTP method outright.
const CodeMethodNotAllowed = -32000

var nullID = json.RawMessage("null")

// Request is an inbound JSON-RPC message.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// IsNotification reports whether the message expects no response.
func (r Request) IsNotification() bool {
	return len(r.ID) == 0
}

// Response is an outbound JSON-RPC message. Exactly one of Result and Error is set.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// Error is the JSON-RPC error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Reply is what the transport should write for one exchange.
// A nil Message means the status is sent without a body.
type Reply struct {
	Status  int
	Message *Response
}

// IsError reports whether the reply carries a protocol-level error.
func (r Reply) IsError() bool {
	return r.Message != nil && r.Message.Error != nil
}

func result(id json.RawMessage, v any) Reply {
	return Reply{
		Status:  http.StatusOK,
		Message: &Response{JSONRPC: mcpgo.JSONRPC_VERSION, ID: orNull(id), Result: v},
	}
}

func accepted() Reply {
	return Reply{Status: http.StatusAccepted}
}

// ProtocolError builds a transport-level error reply.
func ProtocolError(id json.RawMessage, code int, message string) Reply {
	return Reply{
		Status: statusFor(code),
		Message: &Response{
			JSONRPC: mcpgo.JSONRPC_VERSION,
			ID:      orNull(id),
			Error:   &Error{Code: code, Message: message},
		},
	}
}

// InternalError is the generic reply for failures whose details must not leak.
func InternalError() Reply {
	return ProtocolError(nil, mcpgo.INTERNAL_ERROR, "Internal server error")
}

// MethodNotAllowed is the reply for HTTP methods the transport does not serve.
func MethodNotAllowed() Reply {
	return ProtocolError(nil, CodeMethodNotAllowed, "Method not allowed.")
}

func statusFor(code int) int {
	switch code {
	case mcpgo.PARSE_ERROR, mcpgo.INVALID_REQUEST, mcpgo.INVALID_PARAMS:
		return http.StatusBadRequest
	case mcpgo.METHOD_NOT_FOUND:
		return http.StatusNotFound
	case CodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

func orNull(id json.RawMessage) json.RawMessage {
	if len(id) == 0 {
		return nullID
	}
	return id
}
