// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"encoding/csv"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/kinact/pkg/types"
)

func TestWriteLinks(t *testing.T) {
	links := []types.SubstrateLink{
		{
			Kinase:             "AKT1",
			SubstrateGene:      "GSK3B",
			SubstrateResidue:   "S9",
			SubstrateAccession: "P49841",
			Source:             types.SourcePhosphoSitePlus,
			Log2FC:             1.5,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteLinks(&buf, links))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Kinase", "Substrate.Gene", "Substrate.Residue", "Substrate.Accession", "Source", "log2FC"}, rows[0])
	assert.Equal(t, []string{"AKT1", "GSK3B", "S9", "P49841", "PhosphoSitePlus", "1.5"}, rows[1])
}

func TestWriteScoresOmitsWorkingMean(t *testing.T) {
	scores := []types.KinaseScore{
		{
			Kinase:     "AKT1",
			Substrates: 4,
			MeanLog2FC: 1.5,
			Enrichment: 3,
			ZScore:     2.5,
			PValue:     0.0062,
			FDR:        0.025,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteScores(&buf, scores))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Kinase", "Substrates", "Enrichment", "Z.Score", "P.Value", "FDR"}, rows[0])
	assert.Equal(t, []string{"AKT1", "4", "3", "2.5", "0.0062", "0.025"}, rows[1])
}

func TestWriteSites(t *testing.T) {
	sites := []types.SiteMeasurement{
		{
			Protein:    "sp|P49841|GSK3B_HUMAN",
			Gene:       "GSK3B",
			Peptide:    "TTSFAESCKPVQQPSAFGSMK",
			Residue:    "S9",
			P:          "0.004",
			FoldChange: 4,
			Log2FC:     2,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSites(&buf, sites))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Protein", "Gene", "Peptide", "Residue", "p", "FC", "log2FC"}, rows[0])
	assert.Equal(t, "2", rows[1][6])
}

func TestWriteScoresFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kinase_scores.csv")
	require.NoError(t, WriteScoresFile(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Kinase,Substrates,Enrichment,Z.Score,P.Value,FDR\n", string(data))
}

func TestBarChartWritesPNG(t *testing.T) {
	view := []types.KinaseScore{
		{Kinase: "GSK3B", Substrates: 3, ZScore: -2.1},
		{Kinase: "MTOR", Substrates: 4, ZScore: 0.4},
		{Kinase: "AKT1", Substrates: 5, ZScore: 3.2},
	}
	tags := []types.SignificanceTag{types.TagNegative, types.TagDefault, types.TagPositive}

	path := filepath.Join(t.TempDir(), "kinase_activity.png")
	require.NoError(t, BarChart(path, view, tags, types.ReportConfig{}))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	bounds := img.Bounds()
	assert.Equal(t, defaultPlotWidth, bounds.Dx())
	assert.Greater(t, bounds.Dy(), 0)
}

func TestBarChartExplicitSize(t *testing.T) {
	view := []types.KinaseScore{{Kinase: "AKT1", ZScore: 1.0}}
	tags := []types.SignificanceTag{types.TagDefault}

	path := filepath.Join(t.TempDir(), "chart.png")
	cfg := types.ReportConfig{PlotWidth: 640, PlotHeight: 480}
	require.NoError(t, BarChart(path, view, tags, cfg))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 640, img.Bounds().Dx())
	assert.Equal(t, 480, img.Bounds().Dy())
}

func TestBarChartEmptyView(t *testing.T) {
	err := BarChart(filepath.Join(t.TempDir(), "chart.png"), nil, nil, types.ReportConfig{})
	require.Error(t, err)
}

func TestBarChartTagMismatch(t *testing.T) {
	view := []types.KinaseScore{{Kinase: "AKT1", ZScore: 1.0}}
	err := BarChart(filepath.Join(t.TempDir(), "chart.png"), view, nil, types.ReportConfig{})
	require.Error(t, err)
}

func TestWriteManifestRoundTrip(t *testing.T) {
	m := RunManifest{
		Timestamp:  time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		Experiment: "data/experiments/pi3k_inhibitor.csv",
		Reference:  "reference/kinact.db",
		Population: types.PopulationStats{Mean: 0.12, StdDev: 0.9, N: 4218},
		Config: types.PipelineConfig{
			Scoring: types.ScoringConfig{MinSubstrates: 3, Alpha: 0.05},
		},
		Counts: RunCounts{
			Records:     5000,
			Sites:       4218,
			Dropped:     120,
			Annotations: 9000,
			Links:       610,
			Kinases:     88,
			Displayed:   41,
		},
	}

	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, WriteManifest(path, m))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got RunManifest
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.True(t, got.Timestamp.Equal(m.Timestamp))
	assert.Equal(t, m.Counts, got.Counts)
	assert.Equal(t, m.Config.Scoring, got.Config.Scoring)
	assert.InDelta(t, m.Population.Mean, got.Population.Mean, 1e-9)
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "1.5", formatFloat(1.5))
	assert.Equal(t, "3", formatFloat(3))
	assert.Equal(t, "0.07864960352514257", formatFloat(0.07864960352514257))
	assert.Equal(t, "NaN", formatFloat(math.NaN()))
}
