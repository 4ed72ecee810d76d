package main

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"juicery/internal/plant"
)

type plantSummary struct {
	Plant int `json:"plant"`
	plant.Stats
}

type runSummary struct {
	RunID            string         `json:"run_id"`
	ElapsedMillis    int64          `json:"elapsed_ms"`
	DrainInterrupted bool           `json:"drain_interrupted"`
	Plants           []plantSummary `json:"plants"`
	Totals           plant.Stats    `json:"totals"`
}

func newRunSummary(runID string, elapsed time.Duration, fleet *plant.Fleet, interrupted bool) runSummary {
	summary := runSummary{
		RunID:            runID,
		ElapsedMillis:    elapsed.Milliseconds(),
		DrainInterrupted: interrupted,
		Totals:           fleet.Totals(),
	}
	for i, stats := range fleet.PerPlant() {
		summary.Plants = append(summary.Plants, plantSummary{Plant: i + 1, Stats: stats})
	}
	return summary
}

var summaryHeaders = []string{"Plant", "Provided", "Processed", "Bottles", "Not bottled", "Left in queue", "Removed", "Wasted"}

func renderSummary(s runSummary, colorize bool) string {
	printer := message.NewPrinter(language.English)
	count := func(n int) string { return printer.Sprintf("%d", n) }
	row := func(label string, st plant.Stats) []string {
		return []string{
			label,
			count(st.Provided),
			count(st.Processed),
			count(st.Bottled),
			count(st.NotBottled),
			count(st.LeftInQueue),
			count(st.RemovedFromQueues),
			count(st.Wasted),
		}
	}

	rows := make([][]string, 0, len(s.Plants))
	for _, p := range s.Plants {
		rows = append(rows, row(fmt.Sprintf("Plant[%d]", p.Plant), p.Stats))
	}
	aligns := make([]columnAlignment, len(summaryHeaders))
	for i := 1; i < len(aligns); i++ {
		aligns[i] = alignRight
	}

	var b strings.Builder
	for _, line := range renderSectionHeader("Run "+s.RunID, colorize) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString(renderTable(summaryHeaders, rows, row("Total", s.Totals), aligns))
	b.WriteByte('\n')
	fmt.Fprintf(&b, "Elapsed: %s\n", (time.Duration(s.ElapsedMillis) * time.Millisecond).String())
	if s.Totals.Stranded > 0 {
		line := printer.Sprintf("Stranded during shutdown: %d (counted as left in queue)", s.Totals.Stranded)
		if colorize {
			line = ansiYellow + line + ansiReset
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
