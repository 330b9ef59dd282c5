package ui

import (
	"fmt"
	"math"
	"strings"

	"stavis/internal/timing"
)

// Chart renders the two clock waveforms as text, with the data-path delay
// marker and the optional setup-window line. The capture clock draws on the
// upper rail, the launch clock below it, matching the stacked layout of the
// plotted figure this replaces.
type Chart struct {
	Width int // total columns for the plot area, excluding the label gutter
}

const chartGutter = 16 // left gutter for trace labels

// NewChart creates a chart sized to the given terminal width.
func NewChart(termWidth int) Chart {
	w := termWidth - chartGutter - 2
	if w < 40 {
		w = 40
	}
	return Chart{Width: w}
}

// timeToCol maps a time in [0, windowEnd] to a plot column.
func (c Chart) timeToCol(t, windowEnd float64) int {
	if windowEnd <= 0 {
		return 0
	}
	col := int(math.Round(t / windowEnd * float64(c.Width-1)))
	if col < 0 {
		col = 0
	}
	if col >= c.Width {
		col = c.Width - 1
	}
	return col
}

// levelAt samples a trace at the time corresponding to a plot column.
func (c Chart) levelAt(levels []int, col int) int {
	if len(levels) == 0 {
		return 0
	}
	idx := int(math.Round(float64(col) / float64(c.Width-1) * float64(len(levels)-1)))
	return levels[idx]
}

// traceRows renders one square wave as a high row and a low row.
func (c Chart) traceRows(levels []int) (string, string) {
	high := make([]rune, c.Width)
	low := make([]rune, c.Width)

	prev := c.levelAt(levels, 0)
	for col := 0; col < c.Width; col++ {
		cur := c.levelAt(levels, col)
		switch {
		case prev == 0 && cur == 1: // rising edge
			high[col] = '┌'
			low[col] = '┘'
		case prev == 1 && cur == 0: // falling edge
			high[col] = '┐'
			low[col] = '└'
		case cur == 1:
			high[col] = '─'
			low[col] = ' '
		default:
			high[col] = ' '
			low[col] = '─'
		}
		prev = cur
	}
	return string(high), string(low)
}

// overlayMarker replaces the rune at col with the marker rune.
func overlayMarker(row string, col int, marker rune) string {
	runes := []rune(row)
	if col >= 0 && col < len(runes) {
		runes[col] = marker
	}
	return string(runes)
}

// axisRows renders the time axis and its tick labels, one tick per
// nanosecond.
func (c Chart) axisRows(windowEnd float64, styles Styles) string {
	axis := make([]rune, c.Width)
	for i := range axis {
		axis[i] = '─'
	}
	labels := make([]rune, c.Width)
	for i := range labels {
		labels[i] = ' '
	}

	for t := 0.0; t <= windowEnd+1e-9; t += 1.0 {
		col := c.timeToCol(t, windowEnd)
		axis[col] = '┴'
		text := []rune(fmt.Sprintf("%g", t))
		for i, r := range text {
			if col+i < c.Width {
				labels[col+i] = r
			}
		}
	}

	gutter := strings.Repeat(" ", chartGutter)
	return gutter + styles.Muted.Render(string(axis)) + "\n" +
		gutter + styles.Muted.Render(string(labels)) + "\n" +
		gutter + styles.Muted.Render("Time (ns)")
}

// View renders the full chart.
func (c Chart) View(w timing.Waveform, ann timing.Annotations, styles Styles) string {
	windowEnd := 0.0
	if len(w.Time) > 0 {
		windowEnd = w.Time[len(w.Time)-1]
	}

	capHigh, capLow := c.traceRows(w.Capture)
	lauHigh, lauLow := c.traceRows(w.Launch)

	var setupCol = -1
	if ann.ShowSetup {
		setupCol = c.timeToCol(ann.SetupX, windowEnd)
		// The setup window line spans the capture rail, like the dashed
		// vertical on the plotted figure.
		capHigh = overlayMarker(capHigh, setupCol, '┊')
		capLow = overlayMarker(capLow, setupCol, '┊')
	}

	label := func(text string) string {
		return styles.Muted.Render(fmt.Sprintf("%-*s", chartGutter, text))
	}
	gutter := strings.Repeat(" ", chartGutter)

	var sb strings.Builder
	sb.WriteString(label("Capture Clock"))
	sb.WriteString(styles.TraceCapture.Render(capHigh))
	sb.WriteString("\n")
	sb.WriteString(gutter)
	sb.WriteString(styles.TraceCapture.Render(capLow))
	sb.WriteString("\n")
	sb.WriteString(label("Launch Clock"))
	sb.WriteString(styles.TraceLaunch.Render(lauHigh))
	sb.WriteString("\n")
	sb.WriteString(gutter)
	sb.WriteString(styles.TraceLaunch.Render(lauLow))
	sb.WriteString("\n")

	sb.WriteString(c.markerRows(ann, windowEnd, setupCol, styles))
	sb.WriteString(c.axisRows(windowEnd, styles))
	return sb.String()
}

// markerRows renders the delay arrow under the traces, colored by verdict,
// plus the setup-window legend when the marker is shown.
func (c Chart) markerRows(ann timing.Annotations, windowEnd float64, setupCol int, styles Styles) string {
	arrowStyle := styles.Violated
	if ann.DelayMet {
		arrowStyle = styles.Met
	}

	delayCol := c.timeToCol(ann.DelayX, windowEnd)
	arrow := strings.Repeat(" ", delayCol) + "▲"

	labelCol := delayCol
	if over := labelCol + len(ann.DelayLabel) - c.Width; over > 0 {
		labelCol -= over
	}
	if labelCol < 0 {
		labelCol = 0
	}
	labelRow := strings.Repeat(" ", labelCol) + ann.DelayLabel

	gutter := strings.Repeat(" ", chartGutter)
	out := gutter + arrowStyle.Render(arrow) + "\n" +
		gutter + arrowStyle.Render(labelRow) + "\n"

	if setupCol >= 0 {
		legend := strings.Repeat(" ", setupCol) + "┊ setup window"
		out += gutter + styles.Setup.Render(legend) + "\n"
	}
	return out
}
