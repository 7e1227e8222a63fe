// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/kinact/pkg/types"
)

// RunCounts holds the per-stage row counts of one analysis run.
type RunCounts struct {
	Records     int `yaml:"records"`
	Sites       int `yaml:"sites"`
	Dropped     int `yaml:"dropped"`
	Annotations int `yaml:"annotations"`
	Links       int `yaml:"links"`
	Kinases     int `yaml:"kinases"`
	Displayed   int `yaml:"displayed"`
}

// RunManifest records the configuration and stage counts of an analysis
// run for provenance. It is written as run.yaml next to the exports.
type RunManifest struct {
	Timestamp  time.Time             `yaml:"timestamp"`
	Experiment string                `yaml:"experiment"`
	Reference  string                `yaml:"reference"`
	Population types.PopulationStats `yaml:"population"`
	Config     types.PipelineConfig  `yaml:"config"`
	Counts     RunCounts             `yaml:"counts"`
}

// WriteManifest writes the run manifest to path as YAML.
func WriteManifest(path string, m RunManifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}
	return nil
}
