package services

import (
	"fmt"
	"io"
	"saucedemo-e2e/models"
	"strings"
	"time"
)

type Report struct {
	RunID         string
	Total         int
	Passed        int
	Failed        int
	Dropped       int
	TotalDuration time.Duration
	Slowest       models.CheckResult
	Failures      []models.CheckResult
	ByMode        map[string]int
}

// GenerateReport summarises the results of one run.
func GenerateReport(results []models.CheckResult) Report {
	report := Report{
		Total:  len(results),
		ByMode: make(map[string]int),
	}

	for _, r := range results {
		if report.RunID == "" {
			report.RunID = r.RunID
		}
		report.ByMode[r.Mode.String()]++
		report.Dropped += len(r.Dropped)
		report.TotalDuration += r.Duration

		if r.Duration > report.Slowest.Duration {
			report.Slowest = r
		}

		if r.Passed {
			report.Passed++
			continue
		}
		report.Failed++
		report.Failures = append(report.Failures, r)
	}

	return report
}

func (r Report) OK() bool {
	return r.Total > 0 && r.Failed == 0
}

func PrintReport(w io.Writer, report Report) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "┌──────────────────────────────────────────────────────────────┐")
	fmt.Fprintln(w, "│                  Inventory Sort Verification                 │")
	fmt.Fprintln(w, "├───────────────────────────────┬──────────────────────────────┤")
	fmt.Fprintf(w, "│ %-29s │ %-28s │\n", "Run", truncateText(report.RunID, 28))
	fmt.Fprintf(w, "│ %-29s │ %-28d │\n", "Cases", report.Total)
	fmt.Fprintf(w, "│ %-29s │ %-28d │\n", "Passed", report.Passed)
	fmt.Fprintf(w, "│ %-29s │ %-28d │\n", "Failed", report.Failed)
	fmt.Fprintf(w, "│ %-29s │ %-28d │\n", "Dropped Values", report.Dropped)
	fmt.Fprintf(w, "│ %-29s │ %-28s │\n", "Total Time", report.TotalDuration.Round(time.Millisecond))
	fmt.Fprintln(w, "└───────────────────────────────┴──────────────────────────────┘")

	if report.Slowest.Case != "" {
		fmt.Fprintf(w, "Slowest: %s (%s)\n", report.Slowest.Case, report.Slowest.Duration.Round(time.Millisecond))
	}

	if len(report.Failures) == 0 {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "┌─────┬──────────────────────────────────────────────┬──────────┐")
	fmt.Fprintln(w, "│ #   │ Failed Case                                  │ Position │")
	fmt.Fprintln(w, "├─────┼──────────────────────────────────────────────┼──────────┤")
	for i, f := range report.Failures {
		pos := "-"
		if f.Divergence >= 0 {
			pos = fmt.Sprint(f.Divergence)
		}
		fmt.Fprintf(w, "│ %-3d │ %-44s │ %-8s │\n", i+1, truncateText(f.Case, 44), pos)
	}
	fmt.Fprintln(w, "└─────┴──────────────────────────────────────────────┴──────────┘")
	for _, f := range report.Failures {
		fmt.Fprintf(w, "%s: %s\n", f.Case, f.Err)
		if len(f.Raw) > 0 {
			fmt.Fprintf(w, "  observed: %s\n", strings.Join(f.Raw, " | "))
		}
	}
}

func truncateText(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
