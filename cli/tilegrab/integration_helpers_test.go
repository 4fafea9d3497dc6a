//go:build integration

package main

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/tilegrab/test/testutil"
)

// startTileServer answers every tile request with the request path, and 404 below /missing/.
func startTileServer(t *testing.T) *testutil.TileServer {
	t.Helper()
	return testutil.NewTileServer(t).FailPrefix("/missing/", http.StatusNotFound)
}

// writeJob writes a bbox job for the given template and zoom range and returns its path.
func writeJob(t *testing.T, dir, template string, minZoom, maxZoom int) string {
	t.Helper()
	content := "version: \"1.0\"\n" +
		"tile:\n" +
		"  type: url\n" +
		"  url: " + template + "\n" +
		"  subdomains: [a, b]\n" +
		"  minZoom: " + strconv.Itoa(minZoom) + "\n" +
		"  maxZoom: " + strconv.Itoa(maxZoom) + "\n" +
		"  format: png\n" +
		"area:\n" +
		"  type: bbox\n" +
		"  data: [1.0, 1.0, 2.0, 2.0]\n"
	path := filepath.Join(dir, "job.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// writeTempConfig writes a minimal settings file to path.
func writeTempConfig(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	yamlContent := "settings:\n" +
		"  http_timeout: 5s\n" +
		"  log_level: error\n"
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0o600))
}

// runCLI executes the root command with args and returns stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}
