// Package redis provides a Redis-backed response cache, shared across
// server replicas.
package redis
