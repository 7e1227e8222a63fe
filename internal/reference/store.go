// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reference

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/kinact/pkg/types"
)

const dbFile = "kinact.db"

// Store manages the local SQLite annotation database. Importing a
// reference CSV once lets every subsequent scoring run read its
// filtered annotation set without re-parsing the full dataset.
type Store struct {
	db *sql.DB
}

// OpenStore opens or creates the annotation database at
// referenceDir/kinact.db, creating the schema if needed.
func OpenStore(referenceDir string) (*Store, error) {
	if err := os.MkdirAll(referenceDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating reference directory: %w", err)
	}

	dbPath := filepath.Join(referenceDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening annotation database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS annotations (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			kinase TEXT NOT NULL,
			substrate_gene TEXT NOT NULL,
			substrate_acc TEXT NOT NULL,
			substrate_residue TEXT NOT NULL,
			source TEXT NOT NULL,
			networkin_score REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_annotations_site
			ON annotations(substrate_gene, substrate_residue)`,
		`CREATE INDEX IF NOT EXISTS idx_annotations_source
			ON annotations(source)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Import replaces the stored annotation set with anns. The load runs in
// a single transaction so a failed import leaves the previous set
// intact.
func (s *Store) Import(ctx context.Context, anns []types.Annotation, w io.Writer) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM annotations`); err != nil {
		return fmt.Errorf("clearing previous annotations: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO annotations (kinase, substrate_gene, substrate_acc, substrate_residue, source, networkin_score)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range anns {
		var score any
		if !math.IsNaN(a.NetworKINScore) {
			score = a.NetworKINScore
		}
		if _, err := stmt.ExecContext(ctx,
			a.Kinase, a.SubstrateGene, a.SubstrateAccession, a.SubstrateResidue,
			string(a.Source), score,
		); err != nil {
			return fmt.Errorf("inserting annotation %s -> %s/%s: %w",
				a.Kinase, a.SubstrateGene, a.SubstrateResidue, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing import: %w", err)
	}

	fmt.Fprintf(w, "imported %d annotations\n", len(anns))
	return nil
}

// Filtered returns the annotations eligible under cfg, applying the
// same source policy as Filter but in SQL.
func (s *Store) Filtered(ctx context.Context, cfg types.ReferenceConfig) ([]types.Annotation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	query := `SELECT kinase, substrate_gene, substrate_acc, substrate_residue, source, networkin_score
		FROM annotations WHERE source = ?`
	args := []any{string(types.SourcePhosphoSitePlus)}

	if cfg.UseNetworKIN {
		query += ` AND networkin_score >= ?`
		args = []any{string(types.SourceNetworKIN), cfg.NetworKINCutoff}
	}
	query += ` ORDER BY kinase, substrate_gene, substrate_residue`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying annotations: %w", err)
	}
	defer rows.Close()

	var anns []types.Annotation
	for rows.Next() {
		var (
			a      types.Annotation
			source string
			score  sql.NullFloat64
		)
		if err := rows.Scan(&a.Kinase, &a.SubstrateGene, &a.SubstrateAccession,
			&a.SubstrateResidue, &source, &score); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		a.Source = types.AnnotationSource(source)
		if score.Valid {
			a.NetworKINScore = score.Float64
		} else {
			a.NetworKINScore = math.NaN()
		}
		anns = append(anns, a)
	}
	return anns, rows.Err()
}

// SourceCounts reports the number of stored annotations per source.
func (s *Store) SourceCounts(ctx context.Context) (map[types.AnnotationSource]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT source, count(*) FROM annotations GROUP BY source ORDER BY source`)
	if err != nil {
		return nil, fmt.Errorf("counting annotations: %w", err)
	}
	defer rows.Close()

	counts := make(map[types.AnnotationSource]int)
	for rows.Next() {
		var (
			source string
			n      int
		)
		if err := rows.Scan(&source, &n); err != nil {
			return nil, fmt.Errorf("scanning count: %w", err)
		}
		counts[types.AnnotationSource(source)] = n
	}
	return counts, rows.Err()
}
