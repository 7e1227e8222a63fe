// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/kinact/internal/dataset"
	"github.com/pdiddy/kinact/internal/reference"
	"github.com/pdiddy/kinact/pkg/types"
)

var referenceCmd = &cobra.Command{
	Use:   "reference",
	Short: "Manage the kinase-substrate annotation set (fetch, import, stats)",
	Long: `Reference manages the local kinase-substrate annotation store. Use
subcommands to download a public dataset, import a CSV into the SQLite
store, or inspect what is loaded.`,
}

// --- fetch subcommand ---

var referenceFetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download a kinase-substrate annotation CSV",
	Long: `Fetch downloads a reference annotation dataset over HTTP into the
reference directory, retrying transient failures with backoff. Combine
with "kinact reference import" to load it into the store.`,
	RunE: runReferenceFetch,
}

func runReferenceFetch(cmd *cobra.Command, args []string) error {
	url, _ := cmd.Flags().GetString("url")
	cfg := referenceConfigFromFlags(cmd)
	cfg.Timeout, _ = cmd.Flags().GetDuration("timeout")
	cfg.UserAgent, _ = cmd.Flags().GetString("user-agent")

	client := &http.Client{Timeout: cfg.Timeout}
	path, err := reference.Fetch(cmd.Context(), client, url, cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "fetched %s\n", path)
	return nil
}

// --- import subcommand ---

var referenceImportCmd = &cobra.Command{
	Use:   "import [csv]",
	Short: "Load a kinase-substrate CSV into the annotation store",
	Long: `Import parses a kinase-substrate annotation CSV and replaces the
contents of the local SQLite store with it. Scoring runs that omit
--reference read their annotations from this store.`,
	Args: cobra.ExactArgs(1),
	RunE: runReferenceImport,
}

func runReferenceImport(cmd *cobra.Command, args []string) error {
	cfg := referenceConfigFromFlags(cmd)

	anns, err := dataset.LoadReference(args[0])
	if err != nil {
		return err
	}

	store, err := reference.OpenStore(cfg.ReferenceDir)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.Import(cmd.Context(), anns, cmd.OutOrStdout())
}

// --- stats subcommand ---

var referenceStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-source annotation counts in the store",
	RunE:  runReferenceStats,
}

func runReferenceStats(cmd *cobra.Command, args []string) error {
	cfg := referenceConfigFromFlags(cmd)

	store, err := reference.OpenStore(cfg.ReferenceDir)
	if err != nil {
		return err
	}
	defer store.Close()

	counts, err := store.SourceCounts(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(counts) == 0 {
		fmt.Fprintln(out, "annotation store is empty")
		return nil
	}
	total := 0
	for _, source := range []types.AnnotationSource{types.SourcePhosphoSitePlus, types.SourceNetworKIN} {
		if n, ok := counts[source]; ok {
			fmt.Fprintf(out, "%-16s %d\n", source, n)
			total += n
		}
	}
	fmt.Fprintf(out, "%-16s %d\n", "total", total)
	return nil
}

// --- shared helpers ---

func referenceConfigFromFlags(cmd *cobra.Command) types.ReferenceConfig {
	dir, _ := cmd.Flags().GetString("reference-dir")
	return types.ReferenceConfig{ReferenceDir: dir}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	referenceCmd.PersistentFlags().String("reference-dir", "reference", "directory of the annotation store")

	// Fetch flags.
	referenceFetchCmd.Flags().String("url", "", "URL of the reference annotation CSV")
	referenceFetchCmd.Flags().Duration("timeout", 60*time.Second, "HTTP request timeout")
	referenceFetchCmd.Flags().String("user-agent", "kinact/"+version, "User-Agent header for the download")

	// Wire subcommands.
	referenceCmd.AddCommand(referenceFetchCmd)
	referenceCmd.AddCommand(referenceImportCmd)
	referenceCmd.AddCommand(referenceStatsCmd)

	rootCmd.AddCommand(referenceCmd)
}
