/*
Package observability exposes Prometheus metrics for algorithm runs, prunes and
HTTP traffic.

Metrics are registered on a private registry so several servers (or tests) can
coexist in one process. Visualizers report through playback.Hooks obtained from
Metrics.Hooks; HTTP handlers are timed by Metrics.Middleware.
*/
package observability
