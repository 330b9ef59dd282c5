package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stavis/internal/timing"
)

func testWaveform() timing.Waveform {
	return timing.GenerateWaveform(10.0, 0.1, 5.0, 0.0)
}

func TestChartRendersBothTraces(t *testing.T) {
	chart := NewChart(100)
	view := chart.View(testWaveform(), timing.Annotations{DelayLabel: "Delay = 0.00 ns", DelayMet: true}, DefaultStyles())

	assert.Contains(t, view, "Capture Clock")
	assert.Contains(t, view, "Launch Clock")
	assert.Contains(t, view, "Time (ns)")
	assert.Contains(t, view, "Delay = 0.00 ns")
}

func TestChartEdges(t *testing.T) {
	chart := Chart{Width: 50}
	high, low := chart.traceRows(testWaveform().Capture)

	require.Equal(t, 50, len([]rune(high)))
	require.Equal(t, 50, len([]rune(low)))

	// A 5 ns period over a 10 ns window has falling edges near 2.5 and 7.5
	// and a rising edge near 5.0.
	var falling, rising []int
	for col, r := range []rune(high) {
		switch r {
		case '┐':
			falling = append(falling, col)
		case '┌':
			rising = append(rising, col)
		}
	}
	require.Len(t, falling, 2)
	require.Len(t, rising, 1)
	assert.InDelta(t, chart.timeToCol(2.5, 10.0), falling[0], 2)
	assert.InDelta(t, chart.timeToCol(7.5, 10.0), falling[1], 2)
	assert.InDelta(t, chart.timeToCol(5.0, 10.0), rising[0], 2)

	// High through the first half period, low mid-window.
	assert.Equal(t, '─', []rune(high)[chart.timeToCol(1.0, 10.0)])
	assert.Equal(t, ' ', []rune(high)[chart.timeToCol(3.5, 10.0)])
}

func TestChartSetupMarker(t *testing.T) {
	chart := NewChart(100)
	styles := DefaultStyles()

	t.Run("hidden without the setup check", func(t *testing.T) {
		view := chart.View(testWaveform(), timing.Annotations{DelayLabel: "Delay = 0.00 ns"}, styles)
		assert.NotContains(t, view, "setup window")
	})

	t.Run("drawn when enabled", func(t *testing.T) {
		ann := timing.Annotations{
			DelayLabel: "Delay = 0.00 ns",
			ShowSetup:  true,
			SetupX:     4.8,
		}
		view := chart.View(testWaveform(), ann, styles)
		assert.Contains(t, view, "setup window")
		assert.Contains(t, view, "┊")
	})
}

func TestChartDelayMarkerPosition(t *testing.T) {
	chart := Chart{Width: 101}
	// With 101 columns over a 10 ns window, 1 column per 0.1 ns.
	assert.Equal(t, 0, chart.timeToCol(0.0, 10.0))
	assert.Equal(t, 50, chart.timeToCol(5.0, 10.0))
	assert.Equal(t, 100, chart.timeToCol(10.0, 10.0))
	assert.Equal(t, 100, chart.timeToCol(12.0, 10.0), "clamped to the window")
	assert.Equal(t, 0, chart.timeToCol(-1.0, 10.0), "clamped at zero")
}

func TestChartMinimumWidth(t *testing.T) {
	chart := NewChart(10)
	assert.GreaterOrEqual(t, chart.Width, 40)
}

func TestReportTableView(t *testing.T) {
	rows := []timing.ReportRow{
		{Instance: "startflop", Incremental: "0.00", Total: "0.00"},
		{Instance: "LVT buffer1", Incremental: "0.35", Total: "0.35", Variant: timing.VariantLVT},
		{Instance: "endflop", Incremental: "0.00", Total: "0.35"},
	}
	view := NewReportTable(rows).View(DefaultStyles())

	assert.Contains(t, view, "Timing Path Report")
	assert.Contains(t, view, "Instance")
	assert.Contains(t, view, "LVT buffer1")
	assert.Contains(t, view, "endflop")

	t.Run("empty table renders nothing", func(t *testing.T) {
		assert.Equal(t, "", NewReportTable(nil).View(DefaultStyles()))
	})
}

func TestStylesThemes(t *testing.T) {
	light := NewStyles(LightTheme())
	dark := NewStyles(DarkTheme())
	assert.False(t, light.Theme.IsDark)
	assert.True(t, dark.Theme.IsDark)

	div := light.RenderDivider(10)
	assert.True(t, strings.Contains(div, "─"))
}
