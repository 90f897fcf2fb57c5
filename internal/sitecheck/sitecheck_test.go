package sitecheck

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeFile(t *testing.T, siteDir, rel, content string) {
	t.Helper()
	path := filepath.Join(siteDir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestChecker_Run_CleanSite(t *testing.T) {
	siteDir := t.TempDir()
	writeFile(t, siteDir, "index.html",
		`<html><body><a href="about.html">About</a><a href="leaderboard/qv/">QV</a></body></html>`)
	writeFile(t, siteDir, "about.html",
		`<html><body><a href="index.html">Home</a><a href="#top">Top</a></body></html>`)
	writeFile(t, siteDir, "leaderboard/qv/index.html",
		`<html><body><a href="../../index.html">Home</a></body></html>`)

	report, err := New(siteDir, zap.NewNop()).Run()
	require.NoError(t, err)

	assert.Empty(t, report.Broken)
	assert.Equal(t, 3, report.Visited)
}

func TestChecker_Run_BrokenLink(t *testing.T) {
	siteDir := t.TempDir()
	writeFile(t, siteDir, "index.html",
		`<html><body><a href="missing.html">Missing</a></body></html>`)

	report, err := New(siteDir, zap.NewNop()).Run()
	require.NoError(t, err)

	require.Len(t, report.Broken, 1)
	assert.Contains(t, report.Broken[0].URL, "missing.html")
	assert.Equal(t, 404, report.Broken[0].Status)
}

func TestChecker_Run_ExternalLinksIgnored(t *testing.T) {
	siteDir := t.TempDir()
	writeFile(t, siteDir, "index.html",
		`<html><body><a href="https://example.com/far">External</a></body></html>`)

	report, err := New(siteDir, zap.NewNop()).Run()
	require.NoError(t, err)

	assert.Empty(t, report.Broken)
	assert.Equal(t, 1, report.Visited)
}
