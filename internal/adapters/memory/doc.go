// Package memory provides the in-process response cache used when no Redis
// URL is configured.
package memory
