// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package evidence joins normalized site measurements to the filtered
// kinase-substrate annotation set and collapses duplicates.
// See docs/ARCHITECTURE § Evidence Join.
package evidence

import (
	"sort"
	"strings"

	"github.com/pdiddy/kinact/pkg/types"
)

// siteKey is the inner-join key between experiment and reference rows.
type siteKey struct {
	gene    string
	residue string
}

// linkKey identifies one evidence row after deduplication.
type linkKey struct {
	kinase  string
	gene    string
	residue string
	source  types.AnnotationSource
}

// CanonicalAccession strips an isoform suffix from a substrate
// accession, returning the segment before the first separator
// ("P27348-2" → "P27348"). Informational only; join keys are built
// from gene and residue, never from accessions.
func CanonicalAccession(acc string) string {
	if i := strings.IndexAny(acc, "-."); i >= 0 {
		return acc[:i]
	}
	return acc
}

// Join inner-joins sites to annotations on (Gene, Residue) =
// (SubstrateGene, SubstrateResidue), then collapses the result to one
// SubstrateLink per (Kinase, SubstrateGene, SubstrateResidue, Source)
// with Log2FC averaged over every contributing pair. A site matching
// several annotations for the same kinase-source pair, or a site
// measured more than once, therefore contributes a mean rather than
// inflating the evidence. Rows without a partner on the other side are
// excluded. Output is sorted by kinase, substrate gene, residue, and
// source.
func Join(sites []types.SiteMeasurement, anns []types.Annotation) []types.SubstrateLink {
	// Index annotations by join key so the pass over measurements is
	// linear rather than a nested scan.
	index := make(map[siteKey][]types.Annotation, len(anns))
	for _, a := range anns {
		k := siteKey{gene: a.SubstrateGene, residue: a.SubstrateResidue}
		index[k] = append(index[k], a)
	}

	type accum struct {
		sum       float64
		n         int
		accession string
	}
	groups := make(map[linkKey]*accum)

	for _, s := range sites {
		for _, a := range index[siteKey{gene: s.Gene, residue: s.Residue}] {
			k := linkKey{kinase: a.Kinase, gene: a.SubstrateGene, residue: a.SubstrateResidue, source: a.Source}
			g, ok := groups[k]
			if !ok {
				g = &accum{accession: CanonicalAccession(a.SubstrateAccession)}
				groups[k] = g
			}
			g.sum += s.Log2FC
			g.n++
		}
	}

	links := make([]types.SubstrateLink, 0, len(groups))
	for k, g := range groups {
		links = append(links, types.SubstrateLink{
			Kinase:             k.kinase,
			SubstrateGene:      k.gene,
			SubstrateResidue:   k.residue,
			SubstrateAccession: g.accession,
			Source:             k.source,
			Log2FC:             g.sum / float64(g.n),
		})
	}

	sort.Slice(links, func(i, j int) bool {
		a, b := links[i], links[j]
		if a.Kinase != b.Kinase {
			return a.Kinase < b.Kinase
		}
		if a.SubstrateGene != b.SubstrateGene {
			return a.SubstrateGene < b.SubstrateGene
		}
		if a.SubstrateResidue != b.SubstrateResidue {
			return a.SubstrateResidue < b.SubstrateResidue
		}
		return a.Source < b.Source
	})

	return links
}
