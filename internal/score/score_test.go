// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import (
	"math"
	"testing"

	"github.com/pdiddy/kinact/pkg/types"
)

const tolerance = 1e-6

func link(kinase string, log2fc float64) types.SubstrateLink {
	return types.SubstrateLink{
		Kinase:           kinase,
		SubstrateGene:    "SUB",
		SubstrateResidue: "S1",
		Source:           types.SourcePhosphoSitePlus,
		Log2FC:           log2fc,
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestScoreSingleKinase(t *testing.T) {
	// Population μ=0.5, σ=1; kinase with link values {1, 2}:
	//   mS = 1.5
	//   Z  = (1.5 − 0.5)·√2 / 1 = √2
	//   P  = Φ(−√2) ≈ 0.0786496
	//   Enrichment = 1.5 / 0.5 = 3
	pop := types.PopulationStats{Mean: 0.5, StdDev: 1.0, N: 100}
	links := []types.SubstrateLink{link("AKT1", 1.0), link("AKT1", 2.0)}

	scores := Score(links, pop)
	if len(scores) != 1 {
		t.Fatalf("got %d scores, want 1", len(scores))
	}
	s := scores[0]
	if s.Kinase != "AKT1" || s.Substrates != 2 {
		t.Errorf("identity = %s/%d, want AKT1/2", s.Kinase, s.Substrates)
	}
	if !almostEqual(s.MeanLog2FC, 1.5) {
		t.Errorf("MeanLog2FC = %v, want 1.5", s.MeanLog2FC)
	}
	if !almostEqual(s.ZScore, math.Sqrt2) {
		t.Errorf("ZScore = %v, want %v", s.ZScore, math.Sqrt2)
	}
	if !almostEqual(s.PValue, 0.07864960352514257) {
		t.Errorf("PValue = %v, want ~0.0786496", s.PValue)
	}
	if !almostEqual(s.Enrichment, 3.0) {
		t.Errorf("Enrichment = %v, want 3", s.Enrichment)
	}
	// With a single test the BH adjustment is the identity.
	if !almostEqual(s.FDR, s.PValue) {
		t.Errorf("FDR = %v, want %v", s.FDR, s.PValue)
	}
}

func TestScorePValueNonNegativeForInhibition(t *testing.T) {
	pop := types.PopulationStats{Mean: 0.0, StdDev: 1.0, N: 100}
	links := []types.SubstrateLink{link("GSK3B", -2.0), link("GSK3B", -3.0)}

	scores := Score(links, pop)
	if len(scores) != 1 {
		t.Fatalf("got %d scores, want 1", len(scores))
	}
	s := scores[0]
	if s.ZScore >= 0 {
		t.Errorf("ZScore = %v, want negative", s.ZScore)
	}
	if s.PValue <= 0 || s.PValue >= 0.5 {
		t.Errorf("PValue = %v, want small positive upper-tail probability", s.PValue)
	}
}

func TestScoreSortedByKinase(t *testing.T) {
	pop := types.PopulationStats{Mean: 0.1, StdDev: 1.0, N: 10}
	links := []types.SubstrateLink{
		link("ZAP70", 1.0),
		link("ABL1", 2.0),
		link("MTOR", 3.0),
	}

	scores := Score(links, pop)
	want := []string{"ABL1", "MTOR", "ZAP70"}
	if len(scores) != len(want) {
		t.Fatalf("got %d scores, want %d", len(scores), len(want))
	}
	for i, name := range want {
		if scores[i].Kinase != name {
			t.Errorf("scores[%d].Kinase = %q, want %q", i, scores[i].Kinase, name)
		}
	}
}

func TestScoreEmptyEvidence(t *testing.T) {
	pop := types.PopulationStats{Mean: 0.5, StdDev: 1.0, N: 10}
	if scores := Score(nil, pop); len(scores) != 0 {
		t.Errorf("got %d scores from empty evidence, want 0", len(scores))
	}
}

func TestAdjustBH(t *testing.T) {
	// Sorted p = [0.005, 0.01, 0.03, 0.04], n = 4:
	//   rank 4: 0.04·4/4 = 0.04
	//   rank 3: 0.03·4/3 = 0.04
	//   rank 2: 0.01·4/2 = 0.02
	//   rank 1: 0.005·4/1 = 0.02
	in := []float64{0.01, 0.04, 0.03, 0.005}
	want := []float64{0.02, 0.04, 0.04, 0.02}

	got := adjustBH(in)
	if len(got) != len(want) {
		t.Fatalf("got %d values, want %d", len(got), len(want))
	}
	for i := range want {
		if !almostEqual(got[i], want[i]) {
			t.Errorf("adjustBH[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestAdjustBHMonotoneCap(t *testing.T) {
	got := adjustBH([]float64{0.9, 0.95})
	for i, v := range got {
		if v > 1.0 {
			t.Errorf("adjustBH[%d] = %v, exceeds 1", i, v)
		}
	}
}

func TestFDRIndependentOfDisplayFilter(t *testing.T) {
	// The display filter must not change FDR values: the full table is
	// corrected once, and the view only selects rows from it.
	pop := types.PopulationStats{Mean: 0.5, StdDev: 1.0, N: 50}
	links := []types.SubstrateLink{
		link("AKT1", 3.0), link("AKT1", 3.5), link("AKT1", 4.0),
		link("CDK1", 2.0), link("CDK1", 2.5),
		link("RARE1", 5.0),
	}

	scores := Score(links, pop)
	fdrByKinase := make(map[string]float64, len(scores))
	for _, s := range scores {
		fdrByKinase[s.Kinase] = s.FDR
	}

	view := DisplayView(scores, types.ScoringConfig{MinSubstrates: 2, Alpha: 0.05})
	for _, s := range view {
		if s.FDR != fdrByKinase[s.Kinase] {
			t.Errorf("kinase %s FDR changed after filtering: %v vs %v",
				s.Kinase, s.FDR, fdrByKinase[s.Kinase])
		}
	}
}

func TestDisplayViewFiltersAndSorts(t *testing.T) {
	scores := []types.KinaseScore{
		{Kinase: "AKT1", Substrates: 5, ZScore: 2.0},
		{Kinase: "CDK1", Substrates: 1, ZScore: -4.0},
		{Kinase: "GSK3B", Substrates: 3, ZScore: -1.0},
		{Kinase: "MTOR", Substrates: 4, ZScore: 0.5},
	}

	view := DisplayView(scores, types.ScoringConfig{MinSubstrates: 3, Alpha: 0.05})
	want := []string{"GSK3B", "MTOR", "AKT1"}
	if len(view) != len(want) {
		t.Fatalf("got %d rows, want %d", len(view), len(want))
	}
	for i, name := range want {
		if view[i].Kinase != name {
			t.Errorf("view[%d].Kinase = %q, want %q", i, view[i].Kinase, name)
		}
	}
}

func TestDisplayViewEmpty(t *testing.T) {
	scores := []types.KinaseScore{{Kinase: "AKT1", Substrates: 1}}
	if view := DisplayView(scores, types.ScoringConfig{MinSubstrates: 3}); len(view) != 0 {
		t.Errorf("got %d rows, want 0", len(view))
	}
}

func TestTag(t *testing.T) {
	cases := []struct {
		name  string
		score types.KinaseScore
		alpha float64
		want  types.SignificanceTag
	}{
		{"significant activation", types.KinaseScore{ZScore: 3.0, PValue: 0.001}, 0.05, types.TagPositive},
		{"significant inhibition", types.KinaseScore{ZScore: -3.0, PValue: 0.001}, 0.05, types.TagNegative},
		{"not significant", types.KinaseScore{ZScore: 1.0, PValue: 0.2}, 0.05, types.TagDefault},
		{"boundary is not significant", types.KinaseScore{ZScore: 2.0, PValue: 0.05}, 0.05, types.TagDefault},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Tag(tc.score, tc.alpha); got != tc.want {
				t.Errorf("Tag = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestTagsOrder(t *testing.T) {
	scores := []types.KinaseScore{
		{ZScore: 3.0, PValue: 0.001},
		{ZScore: 1.0, PValue: 0.5},
	}
	tags := Tags(scores, 0.05)
	if len(tags) != 2 || tags[0] != types.TagPositive || tags[1] != types.TagDefault {
		t.Errorf("tags = %v, want [positive default]", tags)
	}
}
