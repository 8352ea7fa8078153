package goLedger

import (
	"testing"
	"time"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	m.Inc(MetricLoginSuccess)
	m.Inc(MetricLoginSuccess)
	m.Inc(MetricSessionCleared)

	if got := m.Value(MetricLoginSuccess); got != 2 {
		t.Fatalf("MetricLoginSuccess = %d, want 2", got)
	}
	if got := m.Value(MetricSessionCleared); got != 1 {
		t.Fatalf("MetricSessionCleared = %d, want 1", got)
	}

	s := m.Snapshot()
	if s.Counters[MetricLoginSuccess] != 2 {
		t.Fatalf("snapshot counter = %d, want 2", s.Counters[MetricLoginSuccess])
	}
}

func TestMetricsDisabledIsNoOp(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: false})

	m.Inc(MetricLoginSuccess)
	m.Observe(MetricRequestLatency, 10*time.Millisecond)

	if got := m.Value(MetricLoginSuccess); got != 0 {
		t.Fatalf("disabled metrics recorded a count: %d", got)
	}
	s := m.Snapshot()
	if len(s.Counters) != 0 || len(s.Histograms) != 0 {
		t.Fatalf("disabled snapshot not empty: %+v", s)
	}
}

func TestMetricsLatencyHistogram(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true, EnableLatencyHistograms: true})

	m.Observe(MetricRequestLatency, 3*time.Millisecond)
	m.Observe(MetricRequestLatency, 40*time.Millisecond)
	m.Observe(MetricRequestLatency, 2*time.Second)

	s := m.Snapshot()
	buckets := s.Histograms[MetricRequestLatency]
	if len(buckets) != histBucketCount {
		t.Fatalf("bucket count = %d, want %d", len(buckets), histBucketCount)
	}
	if buckets[0] != 1 || buckets[3] != 1 || buckets[7] != 1 {
		t.Fatalf("unexpected bucket distribution: %v", buckets)
	}
}

func TestBucketIndexBoundaries(t *testing.T) {
	cases := map[time.Duration]int{
		time.Millisecond:       0,
		5 * time.Millisecond:   0,
		6 * time.Millisecond:   1,
		25 * time.Millisecond:  2,
		50 * time.Millisecond:  3,
		100 * time.Millisecond: 4,
		250 * time.Millisecond: 5,
		500 * time.Millisecond: 6,
		time.Second:            7,
	}
	for d, want := range cases {
		if got := bucketIndex(d); got != want {
			t.Errorf("bucketIndex(%v) = %d, want %d", d, got, want)
		}
	}
}
