// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package score computes per-kinase enrichment statistics from the
// evidence table, following Casado et al. 2013.
// See docs/ARCHITECTURE § Scoring.
package score

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/pdiddy/kinact/pkg/types"
)

// Score aggregates the evidence table into one KinaseScore per distinct
// kinase. For each kinase with m links and mean link log2FC mS:
//
//	Enrichment = mS / |μ|
//	Z          = (mS − μ) · √m / σ
//	P          = Φ(−|Z|)
//
// where μ and σ are the population statistics of the whole normalized
// experiment, not of the evidence subset. The p-value is the upper-tail
// probability at the magnitude of Z, so it is non-negative for both
// activated and inhibited kinases; this is the published method's
// convention. FDR is Benjamini-Hochberg across every kinase scored
// here, before any sample-size filtering. An empty evidence table
// yields an empty result. Output is sorted by kinase gene.
func Score(links []types.SubstrateLink, pop types.PopulationStats) []types.KinaseScore {
	byKinase := make(map[string][]float64)
	for _, l := range links {
		byKinase[l.Kinase] = append(byKinase[l.Kinase], l.Log2FC)
	}

	kinases := make([]string, 0, len(byKinase))
	for k := range byKinase {
		kinases = append(kinases, k)
	}
	sort.Strings(kinases)

	normal := distuv.UnitNormal
	scores := make([]types.KinaseScore, 0, len(kinases))
	pvalues := make([]float64, 0, len(kinases))

	for _, kinase := range kinases {
		values := byKinase[kinase]
		m := float64(len(values))
		mS := stat.Mean(values, nil)
		z := (mS - pop.Mean) * math.Sqrt(m) / pop.StdDev
		p := normal.CDF(-math.Abs(z))

		scores = append(scores, types.KinaseScore{
			Kinase:     kinase,
			Substrates: len(values),
			MeanLog2FC: mS,
			Enrichment: mS / math.Abs(pop.Mean),
			ZScore:     z,
			PValue:     p,
		})
		pvalues = append(pvalues, p)
	}

	for i, fdr := range adjustBH(pvalues) {
		scores[i].FDR = fdr
	}
	return scores
}

// adjustBH applies the Benjamini-Hochberg step-up correction and
// returns the adjusted values in the input's order.
func adjustBH(pvalues []float64) []float64 {
	n := len(pvalues)
	if n == 0 {
		return nil
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return pvalues[order[i]] < pvalues[order[j]]
	})

	adjusted := make([]float64, n)
	running := 1.0
	for rank := n - 1; rank >= 0; rank-- {
		idx := order[rank]
		adj := pvalues[idx] * float64(n) / float64(rank+1)
		if adj < running {
			running = adj
		}
		adjusted[idx] = running
	}
	return adjusted
}

// DisplayView returns the scores intended for plotting: kinases with at
// least cfg.MinSubstrates links, sorted by ascending z-score. It
// derives a fresh slice; the full table and its FDR values are computed
// beforehand and are never recomputed from the filtered view.
func DisplayView(scores []types.KinaseScore, cfg types.ScoringConfig) []types.KinaseScore {
	var view []types.KinaseScore
	for _, s := range scores {
		if s.Substrates >= cfg.MinSubstrates {
			view = append(view, s)
		}
	}
	sort.Slice(view, func(i, j int) bool {
		return view[i].ZScore < view[j].ZScore
	})
	return view
}

// Tag classifies one score for plotting: significant scores are tagged
// by the sign of their z-score, everything else is default.
func Tag(s types.KinaseScore, alpha float64) types.SignificanceTag {
	if s.PValue >= alpha {
		return types.TagDefault
	}
	if s.ZScore > 0 {
		return types.TagPositive
	}
	return types.TagNegative
}

// Tags returns the significance tag for each score in order.
func Tags(scores []types.KinaseScore, alpha float64) []types.SignificanceTag {
	tags := make([]types.SignificanceTag, len(scores))
	for i, s := range scores {
		tags[i] = Tag(s, alpha)
	}
	return tags
}
