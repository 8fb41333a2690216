package trailhead

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var rawVersion string

// Version is the release version of the server.
var Version = strings.TrimSpace(rawVersion)

// Name is reported to clients in the initialize handshake.
const Name = "trailhead"
