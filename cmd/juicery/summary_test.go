package main

import (
	"strings"
	"testing"

	"juicery/internal/plant"
)

func TestRenderSummaryFormatsCounts(t *testing.T) {
	s := runSummary{
		RunID:         "abc",
		ElapsedMillis: 1500,
		Plants: []plantSummary{
			{Plant: 1, Stats: plant.Stats{Provided: 1234, Processed: 1000, Bottled: 333, NotBottled: 1, LeftInQueue: 234, Wasted: 235}},
		},
		Totals: plant.Stats{Provided: 1234, Processed: 1000, Bottled: 333, NotBottled: 1, LeftInQueue: 234, Wasted: 235, Stranded: 2},
	}

	out := renderSummary(s, false)
	requireContains(t, out, "== Run abc ==")
	requireContains(t, out, "1,234")
	requireContains(t, out, "1,000")
	requireContains(t, out, "Elapsed: 1.5s")
	requireContains(t, out, "Stranded during shutdown: 2")
	if strings.Contains(out, ansiReset) {
		t.Fatalf("uncolored output contains escape codes: %q", out)
	}
}

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable([]string{"a", "b"}, [][]string{{"x"}}, nil, []columnAlignment{alignLeft, alignRight})
	if !strings.Contains(out, "x") {
		t.Fatalf("row missing: %s", out)
	}
	if renderTable(nil, nil, nil, nil) != "" {
		t.Fatal("expected empty output without headers")
	}
}
