// Package tools defines the six park tools: their argument schemas, the
// upstream calls they make, and how results are shaped for the caller.
package tools
