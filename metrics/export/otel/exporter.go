package otel

import (
	"context"
	"errors"
	"fmt"

	goledger "github.com/MrEthical07/goLedger"
	"github.com/MrEthical07/goLedger/metrics/export/internaldefs"
	"go.opentelemetry.io/otel/metric"
)

var (
	ErrNilMeter  = errors.New("nil meter")
	ErrNilSource = errors.New("nil metrics source")
)

type metricsSource interface {
	MetricsSnapshot() goledger.MetricsSnapshot
	AuditDropped() uint64
}

// OTelExporter bridges engine snapshots into OpenTelemetry observable
// instruments. All instruments share one registered callback; collection cost
// is a single snapshot per cycle regardless of reader count.
type OTelExporter struct {
	source       metricsSource
	registration metric.Registration
}

// NewOTelExporter registers the goLedger metric set on the given meter, reading
// from the engine.
func NewOTelExporter(meter metric.Meter, engine *goledger.Engine) (*OTelExporter, error) {
	return NewOTelExporterFromSource(meter, engine)
}

// NewOTelExporterFromSource registers the goLedger metric set on the given
// meter, reading from a custom source.
func NewOTelExporterFromSource(meter metric.Meter, source metricsSource) (*OTelExporter, error) {
	if meter == nil {
		return nil, ErrNilMeter
	}
	if source == nil {
		return nil, ErrNilSource
	}

	counters := make(map[goledger.MetricID]metric.Int64ObservableCounter, len(internaldefs.CounterDefs))
	observables := make([]metric.Observable, 0, len(internaldefs.CounterDefs)+len(internaldefs.HistogramBoundSuffix)+2)

	for _, def := range internaldefs.CounterDefs {
		ins, err := meter.Int64ObservableCounter(def.Name, metric.WithDescription(def.Help))
		if err != nil {
			return nil, fmt.Errorf("create observable counter %s: %w", def.Name, err)
		}
		counters[def.ID] = ins
		observables = append(observables, ins)
	}

	// The engine carries exactly one histogram, request latency. OTel has no
	// observable histogram instrument, so each cumulative bucket becomes a
	// gauge alongside a total-count gauge.
	latencyDef := internaldefs.HistogramDefs[0]
	var latencyBuckets [8]metric.Int64ObservableGauge
	for i, suffix := range internaldefs.HistogramBoundSuffix {
		name := latencyDef.Name + "_bucket_le_" + suffix
		ins, err := meter.Int64ObservableGauge(name, metric.WithDescription("Cumulative latency bucket count."))
		if err != nil {
			return nil, fmt.Errorf("create latency bucket gauge %s: %w", name, err)
		}
		latencyBuckets[i] = ins
		observables = append(observables, ins)
	}
	latencyCount, err := meter.Int64ObservableGauge(latencyDef.Name+"_count",
		metric.WithDescription("Total latency samples."))
	if err != nil {
		return nil, fmt.Errorf("create latency count gauge: %w", err)
	}
	observables = append(observables, latencyCount)

	auditDropped, err := meter.Int64ObservableCounter(
		"goledger_audit_dropped_total",
		metric.WithDescription("Dropped audit events due to dispatcher backpressure."),
	)
	if err != nil {
		return nil, fmt.Errorf("create audit dropped counter: %w", err)
	}
	observables = append(observables, auditDropped)

	registration, err := meter.RegisterCallback(func(_ context.Context, observer metric.Observer) error {
		snapshot := source.MetricsSnapshot()

		for id, ins := range counters {
			observer.ObserveInt64(ins, int64(snapshot.Counters[id]))
		}

		cumulative := internaldefs.CumulativeBuckets(
			internaldefs.NormalizeBuckets(snapshot.Histograms[latencyDef.ID]))
		for i, ins := range latencyBuckets {
			observer.ObserveInt64(ins, int64(cumulative[i]))
		}
		observer.ObserveInt64(latencyCount, int64(cumulative[len(cumulative)-1]))

		observer.ObserveInt64(auditDropped, int64(source.AuditDropped()))
		return nil
	}, observables...)
	if err != nil {
		return nil, fmt.Errorf("register callback: %w", err)
	}

	return &OTelExporter{source: source, registration: registration}, nil
}

// Close unregisters the collection callback.
func (e *OTelExporter) Close() error {
	if e == nil || e.registration == nil {
		return nil
	}
	return e.registration.Unregister()
}
