package metrics_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"juicery/internal/metrics"
)

func TestRecorderCountsPerPlant(t *testing.T) {
	rec := metrics.New()
	rec.OrangeProvided(1)
	rec.OrangeProvided(1)
	rec.OrangeProvided(2)
	rec.OrangeHandled(1, "peel")
	rec.OrangesEvicted(1, "peel", 3)
	rec.OrangesEvicted(1, "peel", 0)
	rec.WaitInterrupted(2, "producer")
	rec.OrangeStranded(2, "squeeze")
	rec.ObserveQueueDepth(1, "done", 12)

	count, err := testutil.GatherAndCount(rec.Registry(), "juicery_oranges_provided_total")
	if err != nil {
		t.Fatalf("GatherAndCount failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected one series per plant, got %d", count)
	}

	expected := `
# HELP juicery_oranges_evicted_total Oranges removed from a queue by the line inspector
# TYPE juicery_oranges_evicted_total counter
juicery_oranges_evicted_total{plant="1",queue="peel"} 3
`
	if err := testutil.GatherAndCompare(rec.Registry(), strings.NewReader(expected), "juicery_oranges_evicted_total"); err != nil {
		t.Fatalf("unexpected eviction metrics: %v", err)
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var rec *metrics.Recorder
	rec.OrangeProvided(1)
	rec.OrangeHandled(1, "peel")
	rec.OrangesEvicted(1, "peel", 1)
	rec.WaitInterrupted(1, "worker")
	rec.OrangeStranded(1, "peel")
	rec.ObserveQueueDepth(1, "peel", 1)
	if rec.Registry() != nil {
		t.Fatal("expected nil registry")
	}
	if err := rec.WriteTextfile(filepath.Join(t.TempDir(), "none.prom")); err != nil {
		t.Fatalf("WriteTextfile on nil recorder returned error: %v", err)
	}
}

func TestWriteTextfile(t *testing.T) {
	rec := metrics.New()
	rec.OrangeHandled(1, "bottle")
	path := filepath.Join(t.TempDir(), "juicery.prom")
	if err := rec.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	if !strings.Contains(string(data), `juicery_oranges_handled_total{plant="1",stage="bottle"} 1`) {
		t.Fatalf("unexpected textfile contents:\n%s", data)
	}
}
