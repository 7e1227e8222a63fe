// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reference

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/kinact/internal/httputil"
	"github.com/pdiddy/kinact/pkg/types"
)

func init() {
	httputil.RetryBaseDelay = 1 * time.Millisecond
}

func fetchCfg(dir string) types.ReferenceConfig {
	return types.ReferenceConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   10 * time.Second,
			UserAgent: "kinact-test/0.1",
		},
		ReferenceDir: dir,
	}
}

func TestFetchWritesDataset(t *testing.T) {
	const body = "KINASE,SUB_GENE,SUB_ACC_ID,SUB_MOD_RSD,networkin_score,Source\n"
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "kinact-test/0.1", r.Header.Get("User-Agent"))
		w.Write([]byte(body))
	}))
	defer ts.Close()

	dir := t.TempDir()
	var buf bytes.Buffer
	path, err := Fetch(context.Background(), ts.Client(), ts.URL+"/ksdata.csv", fetchCfg(dir), &buf)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "ksdata.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, body, string(data))
	assert.Contains(t, buf.String(), "downloading")
}

func TestFetchRetriesTransientFailures(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer ts.Close()

	var buf bytes.Buffer
	_, err := Fetch(context.Background(), ts.Client(), ts.URL+"/ref.csv", fetchCfg(t.TempDir()), &buf)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestFetchHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	var buf bytes.Buffer
	_, err := Fetch(context.Background(), ts.Client(), ts.URL+"/missing.csv", fetchCfg(t.TempDir()), &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestFetchRequiresURL(t *testing.T) {
	var buf bytes.Buffer
	_, err := Fetch(context.Background(), http.DefaultClient, "", fetchCfg(t.TempDir()), &buf)
	require.Error(t, err)
}
