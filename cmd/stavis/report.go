package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"stavis/internal/config"
	"stavis/internal/timing"
)

// parseVariant maps a command-line argument to a buffer variant.
func parseVariant(arg string) (timing.Variant, error) {
	switch strings.ToLower(arg) {
	case "normal", "n", "buffer":
		return timing.VariantNormal, nil
	case "lvt", "l":
		return timing.VariantLVT, nil
	case "hvt", "h":
		return timing.VariantHVT, nil
	default:
		return "", fmt.Errorf("unknown buffer variant %q (want normal, lvt, or hvt)", arg)
	}
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	setup, err := cmd.Flags().GetBool("setup")
	if err != nil {
		return err
	}

	state := timing.NewPathState(cfg.Catalog(), cfg.Path.MaxChainLength)
	for _, arg := range args {
		v, err := parseVariant(arg)
		if err != nil {
			return err
		}
		if !state.AddBuffer(v) {
			return fmt.Errorf("chain is full (max %d buffers)", cfg.Path.MaxChainLength)
		}
	}
	state.SetSetupCheck(setup)

	b := timing.Compute(state, cfg.Constants())
	out := cmd.OutOrStdout()

	for _, line := range timing.InfoLines(b) {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out)

	rows := timing.ReportRows(b)
	fmt.Fprintf(out, "%-16s %-24s %-18s\n", "Instance", "Incremental Delay (ns)", "Total Delay (ns)")
	fmt.Fprintln(out, strings.Repeat("-", 60))
	for _, row := range rows {
		fmt.Fprintf(out, "%-16s %-24s %-18s\n", row.Instance, row.Incremental, row.Total)
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, timing.Summary(b))
	return nil
}
