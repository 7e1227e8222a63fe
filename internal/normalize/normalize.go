// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize expands multi-phosphosite peptide rows into
// single-site measurements with a defined log2 fold-change.
// See docs/ARCHITECTURE § Normalization.
package normalize

import (
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/pdiddy/kinact/pkg/types"
)

// Summary holds row counts from a normalization run.
type Summary struct {
	// Records is the number of raw input rows.
	Records int

	// Sites is the number of single-site measurements emitted.
	Sites int

	// Dropped is the number of input rows discarded because their fold
	// change could not be parsed or yielded a non-finite log2.
	Dropped int
}

// Normalize expands each raw record into one SiteMeasurement per
// semicolon-separated residue token and computes log2(|FoldChange|)
// for each. A record whose fold change is missing, non-numeric, or
// zero produces no output at all; retention is gated only by the fold
// change, never by the reported p-value. Output preserves input order,
// so repeated runs aggregate identically downstream.
func Normalize(records []types.PhosphoRecord) ([]types.SiteMeasurement, Summary) {
	summary := Summary{Records: len(records)}
	var sites []types.SiteMeasurement

	for _, rec := range records {
		fc, err := strconv.ParseFloat(strings.TrimSpace(rec.FoldChange), 64)
		if err != nil {
			summary.Dropped++
			continue
		}

		log2fc := math.Log2(math.Abs(fc))
		if math.IsInf(log2fc, 0) || math.IsNaN(log2fc) {
			summary.Dropped++
			continue
		}

		for _, tok := range strings.Split(rec.Residues, ";") {
			residue := strings.TrimSpace(tok)
			if residue == "" {
				continue
			}
			sites = append(sites, types.SiteMeasurement{
				Protein:    rec.Protein,
				Gene:       rec.Gene,
				Peptide:    rec.Peptide,
				Residue:    residue,
				P:          rec.P,
				FoldChange: fc,
				Log2FC:     log2fc,
			})
		}
	}

	summary.Sites = len(sites)
	return sites, summary
}

// Population computes the mean and standard deviation of Log2FC over
// the entire normalized experiment. Undefined values never reach this
// point; Normalize has already excluded them.
func Population(sites []types.SiteMeasurement) types.PopulationStats {
	if len(sites) == 0 {
		return types.PopulationStats{}
	}

	xs := make([]float64, len(sites))
	for i, s := range sites {
		xs[i] = s.Log2FC
	}

	return types.PopulationStats{
		Mean:   stat.Mean(xs, nil),
		StdDev: stat.StdDev(xs, nil),
		N:      len(xs),
	}
}
