// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reference

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/pdiddy/kinact/internal/httputil"
	"github.com/pdiddy/kinact/pkg/types"
)

// Fetch downloads a kinase-substrate annotation CSV into the reference
// directory, retrying transient failures. The download lands in a temp
// file and is renamed on success so a partial transfer never replaces
// an existing dataset. It returns the destination path.
func Fetch(ctx context.Context, client *http.Client, url string, cfg types.ReferenceConfig, w io.Writer) (string, error) {
	if url == "" {
		return "", fmt.Errorf("no reference dataset URL supplied")
	}
	if err := os.MkdirAll(cfg.ReferenceDir, 0o755); err != nil {
		return "", fmt.Errorf("creating reference directory: %w", err)
	}

	name := filepath.Base(url)
	if name == "" || name == "." || name == "/" {
		name = "reference.csv"
	}
	destPath := filepath.Join(cfg.ReferenceDir, name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("Accept", "text/csv")

	fmt.Fprintf(w, "downloading %s\n", url)

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return "", fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	tmpFile, err := os.CreateTemp(cfg.ReferenceDir, ".fetch-*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	n, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("renaming temp file: %w", err)
	}

	fmt.Fprintf(w, "saved %s (%d bytes)\n", destPath, n)
	return destPath, nil
}
