/*
Package observability provides tools for monitoring the compatibility engine.

It exposes Prometheus collectors fed by the engine's lifecycle hooks and a
helper to chain the metric hooks with user callbacks.
*/
package observability
