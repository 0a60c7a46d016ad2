// Package observability provides structured logging and Prometheus metrics
// for the blog platform.
//
// This package implements:
//   - zap logger construction from configuration
//   - HTTP request counters and latency histograms
//   - Support assistant outcome and retrieval score metrics
package observability
