// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report writes the analysis outputs: tabular CSV exports, the
// kinase activity bar chart, and the per-run manifest.
// See docs/ARCHITECTURE § Reporting.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pdiddy/kinact/pkg/types"
)

// WriteLinks writes the kinase-substrate links table.
func WriteLinks(w io.Writer, links []types.SubstrateLink) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Kinase", "Substrate.Gene", "Substrate.Residue", "Substrate.Accession", "Source", "log2FC"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, l := range links {
		row := []string{
			l.Kinase,
			l.SubstrateGene,
			l.SubstrateResidue,
			l.SubstrateAccession,
			string(l.Source),
			formatFloat(l.Log2FC),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing link row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteScores writes the full kinase score table. The working mean
// log2FC column stays internal; the export carries the derived
// enrichment instead.
func WriteScores(w io.Writer, scores []types.KinaseScore) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Kinase", "Substrates", "Enrichment", "Z.Score", "P.Value", "FDR"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, s := range scores {
		row := []string{
			s.Kinase,
			strconv.Itoa(s.Substrates),
			formatFloat(s.Enrichment),
			formatFloat(s.ZScore),
			formatFloat(s.PValue),
			formatFloat(s.FDR),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing score row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSites writes the normalized site table, one row per phosphosite.
func WriteSites(w io.Writer, sites []types.SiteMeasurement) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Protein", "Gene", "Peptide", "Residue", "p", "FC", "log2FC"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, s := range sites {
		row := []string{
			s.Protein,
			s.Gene,
			s.Peptide,
			s.Residue,
			s.P,
			formatFloat(s.FoldChange),
			formatFloat(s.Log2FC),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing site row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteLinksFile, WriteScoresFile, and WriteSitesFile are the file
// variants of the corresponding writers.

func WriteLinksFile(path string, links []types.SubstrateLink) error {
	return writeFile(path, func(w io.Writer) error { return WriteLinks(w, links) })
}

func WriteScoresFile(path string, scores []types.KinaseScore) error {
	return writeFile(path, func(w io.Writer) error { return WriteScores(w, scores) })
}

func WriteSitesFile(path string, sites []types.SiteMeasurement) error {
	return writeFile(path, func(w io.Writer) error { return WriteSites(w, sites) })
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
