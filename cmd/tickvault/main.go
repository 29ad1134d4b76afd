// Copyright (c) 2024 Neomantra Corp

// Command tickvault drives the four pipeline stages (catalog generation,
// full download, gap back-fill, and missing-data detection) from the
// command line.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	// A C3 invariant violation panics; it exits 1 like any other fatal error.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, r)
			os.Exit(1)
		}
	}()
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tickvault",
		Short: "Tick-data catalog and archive pipeline",
	}
	cmd.PersistentFlags().String("config", "", "path to a YAML config file")
	cmd.PersistentFlags().String("env-file", "", "path to a .env file loaded before config")
	cmd.PersistentFlags().String("start-date", "", "start date, YYYY-MM-DD (required)")
	cmd.PersistentFlags().String("end-date", "", "end date, YYYY-MM-DD (defaults to start-date)")
	cmd.PersistentFlags().StringSlice("exchanges", nil, "vendor exchange names to operate on")
	cmd.PersistentFlags().StringSlice("venues", nil, "canonical venue names to filter by (missing-data only)")
	cmd.PersistentFlags().StringSlice("instrument-types", nil, "instrument types to filter by (missing-data only)")
	cmd.PersistentFlags().StringSlice("data-types", nil, "products to filter by (missing-data only)")
	cmd.PersistentFlags().Int("shard-index", 0, "this worker's shard index")
	cmd.PersistentFlags().Int("total-shards", 1, "total number of shards")

	cmd.AddCommand(newInstrumentsCmd())
	cmd.AddCommand(newDownloadCmd())
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newCheckGapsCmd())
	cmd.AddCommand(newFullPipelineCmd())
	return cmd
}
