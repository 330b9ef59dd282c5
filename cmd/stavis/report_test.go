package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stavis/internal/timing"
)

func TestParseVariant(t *testing.T) {
	tests := []struct {
		arg     string
		want    timing.Variant
		wantErr bool
	}{
		{"normal", timing.VariantNormal, false},
		{"n", timing.VariantNormal, false},
		{"buffer", timing.VariantNormal, false},
		{"LVT", timing.VariantLVT, false},
		{"l", timing.VariantLVT, false},
		{"hvt", timing.VariantHVT, false},
		{"H", timing.VariantHVT, false},
		{"inverter", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := parseVariant(tt.arg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReportCommand(t *testing.T) {
	var out bytes.Buffer
	reportCmd.SetOut(&out)
	require.NoError(t, reportCmd.Flags().Set("setup", "true"))
	defer func() { _ = reportCmd.Flags().Set("setup", "false") }()

	require.NoError(t, runReport(reportCmd, []string{"lvt", "hvt"}))

	got := out.String()
	assert.Contains(t, got, "Total Delay: 1.00 ns")
	assert.Contains(t, got, "Required Time: 4.80 ns")
	assert.Contains(t, got, "LVT buffer1")
	assert.Contains(t, got, "HVT buffer2")
	assert.Contains(t, got, "Slack = data required time - data arrival time = 4.8 - 1.0 = 3.8 (MET)")
}

func TestReportCommandRejectsUnknownVariant(t *testing.T) {
	var out bytes.Buffer
	reportCmd.SetOut(&out)
	err := runReport(reportCmd, []string{"nand"})
	assert.Error(t, err)
}

func TestReportCommandEmptyChain(t *testing.T) {
	var out bytes.Buffer
	reportCmd.SetOut(&out)
	require.NoError(t, runReport(reportCmd, nil))

	got := out.String()
	assert.Contains(t, got, "Total Delay: 0.00 ns")
	assert.Contains(t, got, "Slack: 5.00 ns (OK)")
	assert.Contains(t, got, "startflop")
	assert.Contains(t, got, "endflop")
}
