package timing

import "fmt"

// Verdict strings used by the path report summary.
const (
	VerdictMet      = "MET"
	VerdictViolated = "VIOLATED"
)

// CaptureTraceOffset is the vertical offset of the capture-clock trace in the
// chart: the capture rail sits two levels above the launch rail.
const CaptureTraceOffset = 2

// ReportRow is one formatted row of the timing path report table. Delay cells
// are rounded to two decimals here, at the presentation boundary; the
// breakdown itself keeps full precision.
type ReportRow struct {
	Instance    string  `json:"instance"`
	Incremental string  `json:"incremental_delay"`
	Total       string  `json:"total_delay"`
	Variant     Variant `json:"variant,omitempty"`
}

// ReportRows formats the breakdown stages as report table rows.
func ReportRows(b Breakdown) []ReportRow {
	rows := make([]ReportRow, len(b.Stages))
	for i, st := range b.Stages {
		rows[i] = ReportRow{
			Instance:    st.Label,
			Incremental: fmt.Sprintf("%.2f", st.Incremental),
			Total:       fmt.Sprintf("%.2f", st.Cumulative),
			Variant:     st.Variant,
		}
	}
	return rows
}

// Verdict returns MET when slack is non-negative, VIOLATED otherwise.
func Verdict(b Breakdown) string {
	if b.Met() {
		return VerdictMet
	}
	return VerdictViolated
}

// Summary renders the fixed-format path summary block. Report consumers parse
// this shape, so the labels, spacing, and one-decimal slack equation are load
// bearing.
func Summary(b Breakdown) string {
	return fmt.Sprintf(
		"Startpoint : %s\n"+
			"Endpoint   : %s\n"+
			"Pathtype   : setup check\n\n"+
			"Slack = data required time - data arrival time = %.1f - %.1f = %.1f (%s)",
		StartpointLabel, EndpointLabel,
		b.RequiredTime, b.ArrivalTime, b.Slack, Verdict(b))
}

// InfoLines returns the short status lines shown above the report table.
func InfoLines(b Breakdown) []string {
	status := "OK"
	if !b.Met() {
		status = "Violation!"
	}
	return []string{
		fmt.Sprintf("Total Delay: %.2f ns", b.ArrivalTime),
		fmt.Sprintf("Required Time: %.2f ns", b.RequiredTime),
		fmt.Sprintf("Slack: %.2f ns (%s)", b.Slack, status),
	}
}

// Annotations describe the chart overlays derived from a breakdown: the data
// arrival marker on the capture rail and, when the setup check is on, the
// dashed setup-window line at requiredTime.
type Annotations struct {
	DelayX     float64 `json:"delay_x"`
	DelayLabel string  `json:"delay_label"`
	DelayMet   bool    `json:"delay_met"`
	SetupX     float64 `json:"setup_x"`
	ShowSetup  bool    `json:"show_setup"`
}

// Annotate derives the chart overlay positions for a breakdown.
func Annotate(b Breakdown, c Constants) Annotations {
	a := Annotations{
		DelayX:     b.ArrivalTime,
		DelayLabel: fmt.Sprintf("Delay = %.2f ns", b.ArrivalTime),
		DelayMet:   b.Met(),
	}
	if b.SetupCheck && c.SetupTimePenalty > 0 {
		a.SetupX = c.ClockPeriod - c.SetupTimePenalty
		a.ShowSetup = true
	}
	return a
}
