// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SubstrateLink is one row of the kinase-substrate evidence table:
// a unique (Kinase, SubstrateGene, SubstrateResidue, Source) tuple with
// the log2 fold-change averaged over every contributing measurement.
type SubstrateLink struct {
	Kinase             string           `json:"kinase" yaml:"kinase"`
	SubstrateGene      string           `json:"substrate_gene" yaml:"substrate_gene"`
	SubstrateResidue   string           `json:"substrate_residue" yaml:"substrate_residue"`
	SubstrateAccession string           `json:"substrate_accession" yaml:"substrate_accession"`
	Source             AnnotationSource `json:"source" yaml:"source"`
	Log2FC             float64          `json:"log2_fc" yaml:"log2_fc"`
}

// KinaseScore is the enrichment result for one kinase. Scores are
// computed once per analysis run and never mutated; the full set is the
// analysis output regardless of any downstream display filtering.
type KinaseScore struct {
	// Kinase is the kinase gene symbol.
	Kinase string `json:"kinase" yaml:"kinase"`

	// Substrates is the evidence sample size m: the number of
	// SubstrateLinks backing this kinase.
	Substrates int `json:"substrates" yaml:"substrates"`

	// MeanLog2FC is the mean link log2 fold-change (mS).
	MeanLog2FC float64 `json:"mean_log2_fc" yaml:"mean_log2_fc"`

	// Enrichment is mS / |population mean|.
	Enrichment float64 `json:"enrichment" yaml:"enrichment"`

	// ZScore is (mS − μ)·√m / σ against the population statistics.
	ZScore float64 `json:"z_score" yaml:"z_score"`

	// PValue is the one-tailed upper-tail probability Φ(−|Z|). It is
	// non-negative regardless of the z-score's sign; the published
	// method reports magnitude significance this way.
	PValue float64 `json:"p_value" yaml:"p_value"`

	// FDR is the Benjamini-Hochberg adjusted PValue, computed across
	// the entire kinase set before any sample-size filtering.
	FDR float64 `json:"fdr" yaml:"fdr"`
}

// SignificanceTag classifies a kinase score for plotting.
type SignificanceTag string

const (
	// TagDefault marks a kinase whose p-value does not reach the
	// significance threshold.
	TagDefault SignificanceTag = "default"

	// TagPositive marks a significant kinase with a positive z-score.
	TagPositive SignificanceTag = "positive"

	// TagNegative marks a significant kinase with a negative z-score.
	TagNegative SignificanceTag = "negative"
)
