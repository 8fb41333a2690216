/*
Package observability exposes Prometheus metrics for the tool server.

Metrics are registered against a caller-supplied prometheus.Registerer so that
tests and embedders never touch the global registry. DispatcherHooks bridges
the dispatcher's lifecycle callbacks into the counters and histograms here.
*/
package observability
