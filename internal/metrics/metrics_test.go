package metrics

import "testing"

func TestSnapshotReflectsIncrements(t *testing.T) {
	m := New()
	m.FilesIndexed.Add(3)
	m.ParseErrors.Inc()
	m.EdgesResolved.Add(7)
	m.QueryLatency.WithLabelValues("outline").Observe(0.01)
	m.QueryLatency.WithLabelValues("outline").Observe(0.02)

	snap := m.Snapshot()
	if snap.FilesIndexedTotal != 3 {
		t.Fatalf("expected 3 files indexed, got %v", snap.FilesIndexedTotal)
	}
	if snap.ParseErrorsTotal != 1 {
		t.Fatalf("expected 1 parse error, got %v", snap.ParseErrorsTotal)
	}
	if snap.EdgesResolvedTotal != 7 {
		t.Fatalf("expected 7 edges resolved, got %v", snap.EdgesResolvedTotal)
	}
	if snap.QueryLatencyCount["outline"] != 2 {
		t.Fatalf("expected 2 outline observations, got %v", snap.QueryLatencyCount["outline"])
	}
}

func TestSnapshotZeroValueBeforeAnyActivity(t *testing.T) {
	m := New()
	snap := m.Snapshot()
	if snap.FilesIndexedTotal != 0 || snap.ParseErrorsTotal != 0 {
		t.Fatalf("expected zeroed snapshot, got %+v", snap)
	}
}
