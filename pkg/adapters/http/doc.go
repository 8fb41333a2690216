// Package http binds the tool server to HTTP.
//
// Every POST /mcp request is one exchange: a fresh mcp.Session is created,
// handed the body, and released when the handler returns or the client goes
// away, whichever happens first.
package http
