package goSession

import (
	"context"
	"testing"
	"time"
)

func TestMetricsCountOutcomes(t *testing.T) {
	fx := newTestEngine(t, func(cfg *Config, _ *Builder) {
		cfg.Metrics.EnableLatencyHistograms = true
	})
	ctx := context.Background()

	pair := fx.issue(t, "u1")

	if _, _, err := fx.engine.Resolve(ctx, pair.RefreshToken); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if _, _, err := fx.engine.Resolve(ctx, "garbage"); err == nil {
		t.Fatal("expected rejection")
	}
	expired := fx.signRefresh(t, pair.SessionID, "u1", time.Now().Add(-time.Hour))
	if _, _, err := fx.engine.Resolve(ctx, expired); err == nil {
		t.Fatal("expected rejection")
	}
	if _, err := fx.engine.RevokeSession(ctx, pair.SessionID, "u1"); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if _, _, err := fx.engine.Resolve(ctx, pair.RefreshToken); err == nil {
		t.Fatal("expected rejection")
	}

	snap := fx.engine.MetricsSnapshot()

	expect := map[MetricID]uint64{
		MetricIssueSuccess:     1,
		MetricResolveSuccess:   1,
		MetricResolveMalformed: 1,
		MetricResolveExpired:   1,
		MetricResolveRevoked:   1,
		MetricRevokeSuccess:    1,
	}
	for id, want := range expect {
		if got := snap.Counters[id]; got != want {
			t.Errorf("counter %d: got %d, want %d", id, got, want)
		}
	}

	var observations uint64
	for _, count := range snap.Histograms[MetricResolveLatency] {
		observations += count
	}
	if observations != 4 {
		t.Fatalf("expected 4 latency observations, got %d", observations)
	}
}

func TestMetricsDisabled(t *testing.T) {
	fx := newTestEngine(t, func(cfg *Config, _ *Builder) {
		cfg.Metrics.Enabled = false
	})

	fx.issue(t, "u1")

	snap := fx.engine.MetricsSnapshot()
	if len(snap.Counters) != 0 {
		t.Fatalf("disabled metrics must snapshot empty, got %+v", snap.Counters)
	}
}
