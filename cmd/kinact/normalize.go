// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/kinact/internal/dataset"
	"github.com/pdiddy/kinact/internal/normalize"
	"github.com/pdiddy/kinact/internal/report"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Expand the phosphosite table into single-site measurements",
	Long: `Normalize runs the first pipeline stage alone: it expands
multi-phosphosite peptide rows into one row per site, computes the log2
fold-change, drops rows without a usable fold change, and writes the
normalized table as CSV. Useful for inspecting what the scorer will see.`,
	RunE: runNormalize,
}

func runNormalize(cmd *cobra.Command, args []string) error {
	experimentPath, _ := cmd.Flags().GetString("experiment")
	outPath, _ := cmd.Flags().GetString("out")
	out := cmd.OutOrStdout()

	if experimentPath == "" {
		return fmt.Errorf("no experiment table supplied: set --experiment")
	}

	records, err := dataset.LoadExperiment(experimentPath)
	if err != nil {
		return err
	}

	sites, summary := normalize.Normalize(records)
	pop := normalize.Population(sites)

	if err := report.WriteSitesFile(outPath, sites); err != nil {
		return err
	}

	fmt.Fprintf(out, "normalized %d records into %d site measurements (%d dropped)\n",
		summary.Records, summary.Sites, summary.Dropped)
	fmt.Fprintf(out, "population log2FC: mean %.4f, stddev %.4f (n=%d)\n",
		pop.Mean, pop.StdDev, pop.N)
	fmt.Fprintf(out, "wrote %s\n", outPath)
	return nil
}

func init() {
	normalizeCmd.Flags().String("experiment", "", "experimental phosphosite table (CSV)")
	normalizeCmd.Flags().String("out", "sites.csv", "output path for the normalized site table")

	rootCmd.AddCommand(normalizeCmd)
}
