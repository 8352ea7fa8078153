// Package prometheus provides Prometheus collectors for goLedger metrics.
//
// [NewPrometheusExporter] accepts a [goledger.Engine] and exposes an [http.Handler]
// that renders all goLedger counters and histograms in Prometheus text exposition
// format. Counter names are prefixed goledger_*_total; the single histogram is
// goledger_request_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry — callers mount the Handler.
//   - Mutate engine state.
package prometheus
