package metrics

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestObserveRunAggregates(t *testing.T) {
	collector := NewCollector()
	collector.ObserveRun(1, "orders", 10*time.Millisecond, nil)
	collector.ObserveRun(1, "orders", 20*time.Millisecond, errors.New("upstream down"))
	collector.ObserveRun(1, "users", 5*time.Millisecond, nil)
	collector.ObserveRun(2, "orders", 1*time.Millisecond, nil)

	snapshot := collector.Snapshot()
	if len(snapshot) != 2 {
		t.Fatalf("expected two tenants, got %d", len(snapshot))
	}
	runs := snapshot[1]
	if len(runs) != 2 {
		t.Fatalf("expected two datasets for tenant 1, got %v", runs)
	}
	if runs[0].Name != "orders" || runs[1].Name != "users" {
		t.Fatalf("datasets must be sorted by name, got %v", runs)
	}
	orders := runs[0]
	if orders.Count != 2 || orders.Failures != 1 {
		t.Fatalf("unexpected counters %+v", orders)
	}
	if orders.TotalDuration != 30*time.Millisecond {
		t.Fatalf("unexpected total duration %v", orders.TotalDuration)
	}
}

func TestSnapshotEmptyCollector(t *testing.T) {
	collector := NewCollector()
	if snapshot := collector.Snapshot(); len(snapshot) != 0 {
		t.Fatalf("expected empty snapshot, got %v", snapshot)
	}
}

func TestGenerateReport(t *testing.T) {
	collector := NewCollector()
	collector.ObserveRun(1, "orders", 10*time.Millisecond, nil)
	collector.ObserveRun(3, "users", 2*time.Millisecond, errors.New("boom"))

	collector.Lock()
	report := collector.generateReport()
	collector.Unlock()

	if !strings.Contains(report, "tenant: 1") || !strings.Contains(report, "tenant: 3") {
		t.Fatalf("report missing tenant sections:\n%s", report)
	}
	if strings.Index(report, "tenant: 1") > strings.Index(report, "tenant: 3") {
		t.Fatalf("tenants must be ordered by id:\n%s", report)
	}
	if !strings.Contains(report, "orders") || !strings.Contains(report, "users") {
		t.Fatalf("report missing dataset rows:\n%s", report)
	}
}
