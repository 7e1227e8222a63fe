// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"time"
)

// HTTPConfig holds shared HTTP settings for stages that make network
// requests (currently only the reference fetcher).
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "kinact/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ReferenceConfig holds settings for the reference annotation set.
type ReferenceConfig struct {
	HTTPConfig `yaml:",inline"`

	// ReferenceDir is the directory holding the annotation store
	// (kinact.db) and downloaded reference CSVs.
	ReferenceDir string `json:"reference_dir" yaml:"reference_dir"`

	// UseNetworKIN selects NetworKIN-predicted relationships instead of
	// the curated PhosphoSitePlus set.
	UseNetworKIN bool `json:"use_networkin" yaml:"use_networkin"`

	// NetworKINCutoff is the minimum prediction score for a NetworKIN
	// row to be eligible. Required (> 0) when UseNetworKIN is set;
	// ignored otherwise.
	NetworKINCutoff float64 `json:"networkin_cutoff" yaml:"networkin_cutoff"`
}

// Validate reports configuration errors before any computation runs.
func (c ReferenceConfig) Validate() error {
	if c.UseNetworKIN && c.NetworKINCutoff <= 0 {
		return fmt.Errorf("networkin predictions enabled but no score cutoff supplied: set --networkin-cutoff > 0")
	}
	return nil
}

// ScoringConfig holds settings for the enrichment scorer and its
// display view.
type ScoringConfig struct {
	// MinSubstrates is the minimum evidence sample size m for a kinase
	// to appear in the display view. The full score table always
	// contains every kinase.
	MinSubstrates int `json:"min_substrates" yaml:"min_substrates"`

	// Alpha is the p-value threshold below which a kinase is tagged
	// significant in the plot. Must lie in (0, 1).
	Alpha float64 `json:"alpha" yaml:"alpha"`
}

// Validate reports configuration errors before any computation runs.
func (c ScoringConfig) Validate() error {
	if c.MinSubstrates < 0 {
		return fmt.Errorf("minimum substrate count must be >= 0, got %d", c.MinSubstrates)
	}
	if c.Alpha <= 0 || c.Alpha >= 1 {
		return fmt.Errorf("significance threshold must lie in (0, 1), got %g", c.Alpha)
	}
	return nil
}

// ReportConfig holds settings for the reporter outputs.
type ReportConfig struct {
	// OutputDir is the directory for the links CSV, scores CSV, bar
	// chart, and run manifest.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// PlotWidth and PlotHeight are the bar chart dimensions in pixels.
	// Zero values fall back to the renderer defaults.
	PlotWidth  int `json:"plot_width" yaml:"plot_width"`
	PlotHeight int `json:"plot_height" yaml:"plot_height"`
}

// PipelineConfig groups all stage configurations for one analysis run.
type PipelineConfig struct {
	Reference ReferenceConfig `json:"reference" yaml:"reference"`
	Scoring   ScoringConfig   `json:"scoring" yaml:"scoring"`
	Report    ReportConfig    `json:"report" yaml:"report"`
}
