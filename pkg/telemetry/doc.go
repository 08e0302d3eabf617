// Package telemetry records render passes. Recorder is the contract the
// printer reports to; Metrics exports Prometheus collectors and Tracer opens
// OpenTelemetry spans. Nop discards everything.
package telemetry
