// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/kinact/internal/dataset"
	"github.com/pdiddy/kinact/internal/evidence"
	"github.com/pdiddy/kinact/internal/normalize"
	"github.com/pdiddy/kinact/internal/reference"
	"github.com/pdiddy/kinact/internal/report"
	"github.com/pdiddy/kinact/internal/score"
	"github.com/pdiddy/kinact/pkg/types"
)

// Export file names written into the output directory.
const (
	linksFile    = "kinase_substrate_links.csv"
	scoresFile   = "kinase_scores.csv"
	chartFile    = "kinase_activity.png"
	manifestFile = "run.yaml"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Run the full kinase activity analysis",
	Long: `Score runs the whole pipeline: it normalizes the experimental
phosphosite table, filters the kinase-substrate reference set, joins the
two into an evidence table, scores every kinase, and writes the exports
(links CSV, scores CSV, bar chart, run manifest) to the output directory.

The reference set comes from --reference (a CSV file) or, when omitted,
from the local annotation store under --reference-dir (see
"kinact reference import").`,
	RunE: runScore,
}

func runScore(cmd *cobra.Command, args []string) error {
	experimentPath, _ := cmd.Flags().GetString("experiment")
	referencePath, _ := cmd.Flags().GetString("reference")
	plot, _ := cmd.Flags().GetBool("plot")
	out := cmd.OutOrStdout()

	cfg := pipelineConfig(cmd)
	if err := cfg.Reference.Validate(); err != nil {
		return err
	}
	if err := cfg.Scoring.Validate(); err != nil {
		return err
	}
	if experimentPath == "" {
		return fmt.Errorf("no experiment table supplied: set --experiment")
	}

	records, err := dataset.LoadExperiment(experimentPath)
	if err != nil {
		return err
	}

	sites, summary := normalize.Normalize(records)
	fmt.Fprintf(out, "normalized %d records into %d site measurements (%d dropped)\n",
		summary.Records, summary.Sites, summary.Dropped)

	pop := normalize.Population(sites)

	anns, referenceName, err := loadAnnotations(cmd.Context(), referencePath, cfg.Reference)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "reference set: %d eligible annotations (%s)\n", len(anns), referenceName)
	if len(anns) == 0 {
		fmt.Fprintln(out, "warning: no eligible reference annotations; check the source policy and cutoff")
	}

	links := evidence.Join(sites, anns)
	if len(links) == 0 {
		fmt.Fprintln(out, "warning: evidence table is empty; no substrate sites matched the reference set")
	}

	scores := score.Score(links, pop)
	view := score.DisplayView(scores, cfg.Scoring)
	tags := score.Tags(view, cfg.Scoring.Alpha)
	fmt.Fprintf(out, "scored %d kinases (%d shown with >= %d substrates)\n",
		len(scores), len(view), cfg.Scoring.MinSubstrates)

	if err := os.MkdirAll(cfg.Report.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	if err := report.WriteLinksFile(filepath.Join(cfg.Report.OutputDir, linksFile), links); err != nil {
		return err
	}
	if err := report.WriteScoresFile(filepath.Join(cfg.Report.OutputDir, scoresFile), scores); err != nil {
		return err
	}
	if plot && len(view) > 0 {
		if err := report.BarChart(filepath.Join(cfg.Report.OutputDir, chartFile), view, tags, cfg.Report); err != nil {
			return err
		}
	}

	manifest := report.RunManifest{
		Timestamp:  time.Now(),
		Experiment: experimentPath,
		Reference:  referenceName,
		Population: pop,
		Config:     cfg,
		Counts: report.RunCounts{
			Records:     summary.Records,
			Sites:       summary.Sites,
			Dropped:     summary.Dropped,
			Annotations: len(anns),
			Links:       len(links),
			Kinases:     len(scores),
			Displayed:   len(view),
		},
	}
	if err := report.WriteManifest(filepath.Join(cfg.Report.OutputDir, manifestFile), manifest); err != nil {
		return err
	}

	fmt.Fprintf(out, "wrote %s\n", cfg.Report.OutputDir)
	return nil
}

// loadAnnotations returns the filtered reference set from a CSV file
// when a path is supplied, otherwise from the local annotation store.
func loadAnnotations(ctx context.Context, path string, cfg types.ReferenceConfig) ([]types.Annotation, string, error) {
	if path != "" {
		all, err := dataset.LoadReference(path)
		if err != nil {
			return nil, "", err
		}
		filtered, err := reference.Filter(all, cfg)
		if err != nil {
			return nil, "", err
		}
		return filtered, path, nil
	}

	store, err := reference.OpenStore(cfg.ReferenceDir)
	if err != nil {
		return nil, "", err
	}
	defer store.Close()

	filtered, err := store.Filtered(ctx, cfg)
	if err != nil {
		return nil, "", err
	}
	return filtered, filepath.Join(cfg.ReferenceDir, "kinact.db"), nil
}

// pipelineConfig assembles the run configuration from flags, falling
// back to viper-managed config file values for flags left at their
// defaults.
func pipelineConfig(cmd *cobra.Command) types.PipelineConfig {
	return types.PipelineConfig{
		Reference: types.ReferenceConfig{
			ReferenceDir:    stringSetting(cmd, "reference-dir", "reference.reference_dir"),
			UseNetworKIN:    boolSetting(cmd, "networkin", "reference.use_networkin"),
			NetworKINCutoff: floatSetting(cmd, "networkin-cutoff", "reference.networkin_cutoff"),
		},
		Scoring: types.ScoringConfig{
			MinSubstrates: intSetting(cmd, "min-substrates", "scoring.min_substrates"),
			Alpha:         floatSetting(cmd, "alpha", "scoring.alpha"),
		},
		Report: types.ReportConfig{
			OutputDir:  stringSetting(cmd, "out-dir", "report.output_dir"),
			PlotWidth:  intSetting(cmd, "plot-width", "report.plot_width"),
			PlotHeight: intSetting(cmd, "plot-height", "report.plot_height"),
		},
	}
}

// Flag-or-config helpers: an explicitly set flag wins, otherwise a
// config file value, otherwise the flag default.

func stringSetting(cmd *cobra.Command, flag, key string) string {
	if !cmd.Flags().Changed(flag) && viper.IsSet(key) {
		return viper.GetString(key)
	}
	v, _ := cmd.Flags().GetString(flag)
	return v
}

func boolSetting(cmd *cobra.Command, flag, key string) bool {
	if !cmd.Flags().Changed(flag) && viper.IsSet(key) {
		return viper.GetBool(key)
	}
	v, _ := cmd.Flags().GetBool(flag)
	return v
}

func intSetting(cmd *cobra.Command, flag, key string) int {
	if !cmd.Flags().Changed(flag) && viper.IsSet(key) {
		return viper.GetInt(key)
	}
	v, _ := cmd.Flags().GetInt(flag)
	return v
}

func floatSetting(cmd *cobra.Command, flag, key string) float64 {
	if !cmd.Flags().Changed(flag) && viper.IsSet(key) {
		return viper.GetFloat64(key)
	}
	v, _ := cmd.Flags().GetFloat64(flag)
	return v
}

func init() {
	scoreCmd.Flags().String("experiment", "", "experimental phosphosite table (CSV)")
	scoreCmd.Flags().String("reference", "", "kinase-substrate reference table (CSV); omit to use the annotation store")
	scoreCmd.Flags().String("reference-dir", "reference", "directory of the annotation store")
	scoreCmd.Flags().Bool("networkin", false, "use NetworKIN-predicted relationships instead of the curated set")
	scoreCmd.Flags().Float64("networkin-cutoff", 0, "minimum NetworKIN score (required with --networkin)")
	scoreCmd.Flags().Int("min-substrates", 3, "minimum substrate count for a kinase to appear in the plot")
	scoreCmd.Flags().Float64("alpha", 0.05, "p-value threshold for significance coloring")
	scoreCmd.Flags().String("out-dir", "output", "directory for the exports")
	scoreCmd.Flags().Bool("plot", true, "render the kinase activity bar chart")
	scoreCmd.Flags().Int("plot-width", 0, "bar chart width in pixels (0 = default)")
	scoreCmd.Flags().Int("plot-height", 0, "bar chart height in pixels (0 = sized to kinase count)")

	rootCmd.AddCommand(scoreCmd)
}
