package mcp

import "errors"

var errMissingParams = errors.New("params are required")
