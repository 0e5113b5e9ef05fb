// Package metrics defines the build Recorder abstraction and its Prometheus implementation.
//
// Builds record through a Recorder. NoopRecorder is the default; the preview server
// and one-shot builds with a textfile target use PrometheusRecorder bound to their own
// registry, which is scraped on /metrics or written with WriteTextfile.
package metrics
