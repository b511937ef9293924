package otel

import (
	"context"
	"errors"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	goSession "github.com/Kade-Lor/goSession"
)

type fakeSource struct {
	snapshot goSession.MetricsSnapshot
	dropped  uint64
}

func (f *fakeSource) MetricsSnapshot() goSession.MetricsSnapshot { return f.snapshot }
func (f *fakeSource) AuditDropped() uint64                       { return f.dropped }

func newFakeSource() *fakeSource {
	return &fakeSource{
		snapshot: goSession.MetricsSnapshot{
			Counters: map[goSession.MetricID]uint64{
				goSession.MetricIssueSuccess:   4,
				goSession.MetricResolveSuccess: 9,
			},
			Histograms: map[goSession.MetricID][]uint64{
				goSession.MetricResolveLatency: {3, 1, 0, 0, 0, 0, 0, 0},
			},
		},
		dropped: 1,
	}
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]int64 {
	t.Helper()

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}

	values := make(map[string]int64)
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					values[m.Name] = dp.Value
				}
			case metricdata.Gauge[int64]:
				for _, dp := range data.DataPoints {
					values[m.Name] = dp.Value
				}
			}
		}
	}
	return values
}

func TestOTelExporterObserves(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	meter := provider.Meter("gosession-test")

	exporter, err := NewOTelExporterFromSource(meter, newFakeSource())
	if err != nil {
		t.Fatalf("create exporter: %v", err)
	}
	defer func() { _ = exporter.Close() }()

	values := collect(t, reader)

	expect := map[string]int64{
		"gosession_issue_success_total":                     4,
		"gosession_resolve_success_total":                   9,
		"gosession_resolve_revoked_total":                   0,
		"gosession_audit_dropped_total":                     1,
		"gosession_resolve_latency_seconds_bucket_le_0_005": 3,
		"gosession_resolve_latency_seconds_bucket_le_0_01":  4,
		"gosession_resolve_latency_seconds_bucket_le_inf":   4,
		"gosession_resolve_latency_seconds_count":           4,
	}
	for name, want := range expect {
		if got := values[name]; got != want {
			t.Errorf("%s: got %d, want %d", name, got, want)
		}
	}
}

func TestOTelExporterTracksSource(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	meter := provider.Meter("gosession-test")

	source := newFakeSource()
	exporter, err := NewOTelExporterFromSource(meter, source)
	if err != nil {
		t.Fatalf("create exporter: %v", err)
	}
	defer func() { _ = exporter.Close() }()

	first := collect(t, reader)
	if first["gosession_issue_success_total"] != 4 {
		t.Fatalf("unexpected first collection: %v", first)
	}

	source.snapshot.Counters[goSession.MetricIssueSuccess] = 10
	second := collect(t, reader)
	if second["gosession_issue_success_total"] != 10 {
		t.Fatalf("callback must read live snapshots, got %v", second)
	}
}

func TestOTelExporterNilInputs(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	meter := provider.Meter("gosession-test")

	if _, err := NewOTelExporterFromSource(nil, newFakeSource()); !errors.Is(err, ErrNilMeter) {
		t.Fatalf("expected ErrNilMeter, got %v", err)
	}
	if _, err := NewOTelExporterFromSource(meter, nil); !errors.Is(err, ErrNilSource) {
		t.Fatalf("expected ErrNilSource, got %v", err)
	}
}

func TestOTelExporterCloseIdempotent(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	meter := provider.Meter("gosession-test")

	exporter, err := NewOTelExporterFromSource(meter, newFakeSource())
	if err != nil {
		t.Fatalf("create exporter: %v", err)
	}
	if err := exporter.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := exporter.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}
