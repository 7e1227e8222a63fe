// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// NASentinel marks a missing value in phosphoproteomics table exports.
const NASentinel = "NA"

// PhosphoRecord is one row of the raw experimental phosphosite table.
// Fields arrive as text; FoldChange is parsed (and validated) during
// normalization so that malformed rows can be dropped rather than
// failing the run.
type PhosphoRecord struct {
	// Protein is the substrate protein accession as reported by the
	// quantification software.
	Protein string `json:"protein" yaml:"protein"`

	// Gene is the substrate gene symbol (e.g. "AKT1").
	Gene string `json:"gene" yaml:"gene"`

	// Peptide is the identified peptide sequence.
	Peptide string `json:"peptide" yaml:"peptide"`

	// Residues holds one or more phosphosite tokens (e.g. "S102" or
	// "S102;T105") separated by semicolons.
	Residues string `json:"residues" yaml:"residues"`

	// P is the reported p-value for the measurement. It may be the NA
	// sentinel; it does not participate in scoring and does not gate
	// row retention.
	P string `json:"p" yaml:"p"`

	// FoldChange is the treatment/control ratio as reported, unparsed.
	FoldChange string `json:"fold_change" yaml:"fold_change"`
}

// SiteMeasurement is a normalized measurement for a single phosphosite:
// exactly one residue token and a finite log2 fold-change.
type SiteMeasurement struct {
	Protein    string  `json:"protein" yaml:"protein"`
	Gene       string  `json:"gene" yaml:"gene"`
	Peptide    string  `json:"peptide" yaml:"peptide"`
	Residue    string  `json:"residue" yaml:"residue"`
	P          string  `json:"p" yaml:"p"`
	FoldChange float64 `json:"fold_change" yaml:"fold_change"`

	// Log2FC is log2(|FoldChange|). The sign of the ratio is discarded
	// before the logarithm, following Casado et al. 2013.
	Log2FC float64 `json:"log2_fc" yaml:"log2_fc"`
}

// PopulationStats holds the global statistics of the normalized
// experiment, computed over every retained SiteMeasurement.Log2FC.
// The enrichment scorer standardizes per-kinase means against these.
type PopulationStats struct {
	Mean   float64 `json:"mean" yaml:"mean"`
	StdDev float64 `json:"std_dev" yaml:"std_dev"`
	N      int     `json:"n" yaml:"n"`
}
