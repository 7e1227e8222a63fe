// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// AnnotationSource identifies where a kinase-substrate relationship
// comes from: manual curation or network prediction.
type AnnotationSource string

const (
	// SourcePhosphoSitePlus marks relationships curated from the
	// literature (PhosphoSitePlus).
	SourcePhosphoSitePlus AnnotationSource = "PhosphoSitePlus"

	// SourceNetworKIN marks relationships predicted by the NetworKIN
	// algorithm. Only these rows carry a NetworKINScore.
	SourceNetworKIN AnnotationSource = "NetworKIN"
)

// Annotation is one kinase-substrate relationship from the reference
// dataset.
type Annotation struct {
	// Kinase is the kinase gene symbol.
	Kinase string `json:"kinase" yaml:"kinase"`

	// SubstrateGene is the substrate gene symbol, matched against the
	// experiment's Gene column.
	SubstrateGene string `json:"substrate_gene" yaml:"substrate_gene"`

	// SubstrateAccession is the substrate protein accession. It may
	// carry an isoform suffix (e.g. "P27348-2"); the suffix is stripped
	// for reporting but never participates in join keys.
	SubstrateAccession string `json:"substrate_accession" yaml:"substrate_accession"`

	// SubstrateResidue is the modified residue (e.g. "S473"), matched
	// against the experiment's normalized Residue.
	SubstrateResidue string `json:"substrate_residue" yaml:"substrate_residue"`

	// Source tells whether the row is curated or predicted.
	Source AnnotationSource `json:"source" yaml:"source"`

	// NetworKINScore is the prediction confidence. It is NaN for
	// curated rows, which carry no score.
	NetworKINScore float64 `json:"networkin_score" yaml:"networkin_score"`
}
