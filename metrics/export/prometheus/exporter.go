package prometheus

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	goledger "github.com/MrEthical07/goLedger"
	"github.com/MrEthical07/goLedger/metrics/export/internaldefs"
)

const contentType = "text/plain; version=0.0.4; charset=utf-8"

type metricsSource interface {
	MetricsSnapshot() goledger.MetricsSnapshot
	AuditDropped() uint64
}

// PrometheusExporter renders goLedger metrics in Prometheus text exposition format.
// It streams straight to the scraper; no intermediate registry is kept.
type PrometheusExporter struct {
	source metricsSource
}

// NewPrometheusExporter creates a Prometheus exporter that reads from the given [goledger.Engine].
func NewPrometheusExporter(engine *goledger.Engine) *PrometheusExporter {
	return &PrometheusExporter{source: engine}
}

// NewPrometheusExporterFromSource creates a Prometheus exporter from a
// custom metrics source.
func NewPrometheusExporterFromSource(source metricsSource) *PrometheusExporter {
	return &PrometheusExporter{source: source}
}

// Handler returns an http.Handler that serves the scrape endpoint.
func (p *PrometheusExporter) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", contentType)
		_ = p.WriteTo(w)
	})
}

// Render returns the exposition text as a string. Handler is the cheaper path
// for serving scrapes; Render exists for logging and tests.
func (p *PrometheusExporter) Render() string {
	var b strings.Builder
	_ = p.WriteTo(&b)
	return b.String()
}

// WriteTo streams the current exposition text. A snapshot with no counters, no
// histogram samples, and no dropped audit events writes nothing, which keeps
// scrapes of a metrics-disabled engine empty rather than all-zero.
func (p *PrometheusExporter) WriteTo(w io.Writer) error {
	if p == nil || p.source == nil {
		return nil
	}

	snapshot := p.source.MetricsSnapshot()
	dropped := p.source.AuditDropped()
	if len(snapshot.Counters) == 0 && len(snapshot.Histograms) == 0 && dropped == 0 {
		return nil
	}

	for _, def := range internaldefs.CounterDefs {
		if err := writeCounter(w, def.Name, def.Help, snapshot.Counters[def.ID]); err != nil {
			return err
		}
	}

	for _, def := range internaldefs.HistogramDefs {
		buckets := internaldefs.CumulativeBuckets(internaldefs.NormalizeBuckets(snapshot.Histograms[def.ID]))
		if err := writeHistogram(w, def.Name, def.Help, buckets); err != nil {
			return err
		}
	}

	return writeCounter(w, "goledger_audit_dropped_total",
		"Dropped audit events due to dispatcher backpressure.", dropped)
}

func writeCounter(w io.Writer, name, help string, value uint64) error {
	_, err := fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s counter\n%s %d\n",
		name, escapeHelp(help), name, name, value)
	return err
}

func writeHistogram(w io.Writer, name, help string, cumulative [8]uint64) error {
	if _, err := fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s histogram\n",
		name, escapeHelp(help), name); err != nil {
		return err
	}

	for i, le := range internaldefs.HistogramBounds {
		if _, err := fmt.Fprintf(w, "%s_bucket{le=%q} %d\n", name, le, cumulative[i]); err != nil {
			return err
		}
	}

	// The engine's histogram tracks bucket counts only; _sum stays at zero so
	// scrapers that expect the full histogram triplet keep parsing.
	count := cumulative[len(cumulative)-1]
	_, err := fmt.Fprintf(w, "%s_count %d\n%s_sum 0\n", name, count, name)
	return err
}

func escapeHelp(help string) string {
	help = strings.ReplaceAll(help, "\\", "\\\\")
	return strings.ReplaceAll(help, "\n", "\\n")
}
