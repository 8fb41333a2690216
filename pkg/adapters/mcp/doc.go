/*
Package mcp adapts JSON-RPC exchanges to the tool dispatcher.

A Session is created for exactly one exchange. It owns a fresh
dispatcher.Dispatcher, answers initialize, ping, tools/list and tools/call,
and is released by Close, which runs its callbacks exactly once no matter how
the exchange ended. Sessions are never pooled or shared.

Failures the dispatcher recovers (bad arguments, unknown tools, handler
errors) travel as successful results. Only framing problems become JSON-RPC
error objects, built with ProtocolError.
*/
package mcp
