// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dataset reads the experimental phosphosite table and the
// kinase-substrate reference table from CSV files.
// See docs/ARCHITECTURE § Input Tables.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pdiddy/kinact/pkg/types"
)

// experimentColumns is the required header of the experiment table, in
// order. These are the column names produced by the upstream
// quantification export.
var experimentColumns = []string{"Protein", "Gene", "Peptide", "Residue.Both", "p", "FC"}

// Reference table column names. Located by header, not position, since
// public kinase-substrate datasets carry additional columns.
const (
	colKinase           = "KINASE"
	colSubstrateGene    = "SUB_GENE"
	colSubstrateAcc     = "SUB_ACC_ID"
	colSubstrateResidue = "SUB_MOD_RSD"
	colNetworKINScore   = "networkin_score"
	colSource           = "Source"
)

// LoadExperiment reads the raw phosphosite table from a CSV file.
func LoadExperiment(path string) ([]types.PhosphoRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening experiment table: %w", err)
	}
	defer f.Close()

	records, err := ReadExperiment(f)
	if err != nil {
		return nil, fmt.Errorf("reading experiment table %s: %w", path, err)
	}
	return records, nil
}

// ReadExperiment parses the raw phosphosite table. The header must
// contain exactly the six required columns in order; anything else is a
// contract violation and fails immediately.
func ReadExperiment(r io.Reader) ([]types.PhosphoRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(experimentColumns)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	for i, want := range experimentColumns {
		if strings.TrimSpace(header[i]) != want {
			return nil, fmt.Errorf("unexpected column %d: got %q, want %q (required columns: %s)",
				i+1, header[i], want, strings.Join(experimentColumns, ", "))
		}
	}

	var records []types.PhosphoRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}
		records = append(records, types.PhosphoRecord{
			Protein:    row[0],
			Gene:       row[1],
			Peptide:    row[2],
			Residues:   row[3],
			P:          row[4],
			FoldChange: row[5],
		})
	}
	return records, nil
}

// LoadReference reads the kinase-substrate annotation table from a CSV
// file.
func LoadReference(path string) ([]types.Annotation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening reference table: %w", err)
	}
	defer f.Close()

	anns, err := ReadReference(f)
	if err != nil {
		return nil, fmt.Errorf("reading reference table %s: %w", path, err)
	}
	return anns, nil
}

// ReadReference parses the kinase-substrate annotation table. Columns
// are located by name; a header missing any required column is a
// contract violation. The networkin_score column may hold the NA
// sentinel for curated rows, stored as NaN.
func ReadReference(r io.Reader) ([]types.Annotation, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{colKinase, colSubstrateGene, colSubstrateAcc, colSubstrateResidue, colNetworKINScore, colSource} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	var anns []types.Annotation
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}
		line++
		if len(row) < len(header) {
			return nil, fmt.Errorf("row %d: got %d fields, want %d", line, len(row), len(header))
		}

		score := math.NaN()
		if raw := strings.TrimSpace(row[idx[colNetworKINScore]]); raw != "" && raw != types.NASentinel {
			score, err = strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid networkin_score %q", line, raw)
			}
		}

		anns = append(anns, types.Annotation{
			Kinase:             row[idx[colKinase]],
			SubstrateGene:      row[idx[colSubstrateGene]],
			SubstrateAccession: row[idx[colSubstrateAcc]],
			SubstrateResidue:   row[idx[colSubstrateResidue]],
			Source:             types.AnnotationSource(row[idx[colSource]]),
			NetworKINScore:     score,
		})
	}
	return anns, nil
}
