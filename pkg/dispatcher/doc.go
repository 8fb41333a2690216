/*
Package dispatcher runs a single tool call from raw payload to response envelope.

Every call walks the same sequence of states:

	Received -> Validating -> ValidationFailed | Dispatching
	Dispatching -> HandlerSucceeded | HandlerFailed
	* -> Responded

There is no retry transition. Whatever happens, CallTool returns exactly one
*mcp.CallToolResult and never panics or returns an error: missing arguments,
unknown tools, schema violations and handler failures are all turned into a
text item carrying a JSON object with an "error" field.

A Dispatcher holds no per-call state. The transport adapter still creates a
fresh one for every exchange so nothing can leak between exchanges.
*/
package dispatcher
