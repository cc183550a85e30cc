package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dirsum/pkg/display"
	"github.com/arthur-debert/dirsum/pkg/manifest"
	"github.com/arthur-debert/dirsum/pkg/paths"
)

// setTestEnv points the XDG directories at throwaway locations so
// tests never read or write the developer's real config.
func setTestEnv(t *testing.T) {
	t.Helper()
	t.Setenv(paths.EnvConfigDir, t.TempDir())
	t.Setenv(paths.EnvStateDir, t.TempDir())
}

// writeTree builds a small directory tree with a nested file and a
// symlink, the shapes most commands need.
func writeTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "docs", "readme.md"), []byte("hello\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.go"), []byte("package main\n"), 0o644))
	require.NoError(t, os.Symlink("docs/readme.md", filepath.Join(root, "link")))
	return root
}

// runCommand executes the CLI with captured output.
func runCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var outBuf, errBuf strings.Builder
	rootCmd := NewRootCmd()
	rootCmd.SetOut(&outBuf)
	rootCmd.SetErr(&errBuf)
	rootCmd.SetArgs(args)
	err = rootCmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func scanView(t *testing.T, out string) display.ScanView {
	t.Helper()
	var view display.ScanView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	return view
}

func TestScanWritesManifest(t *testing.T) {
	setTestEnv(t)
	tree := writeTree(t)
	manifestPath := filepath.Join(t.TempDir(), "snap.json")

	out, _, err := runCommand(t, "scan", tree, "-o", manifestPath, "--format", "json")
	require.NoError(t, err)

	view := scanView(t, out)
	assert.Equal(t, "blake3", view.Algorithm)
	assert.NotEmpty(t, view.Digest)
	assert.Equal(t, "clean", view.Outcome)

	m, err := manifest.Load(afero.NewOsFs(), manifestPath)
	require.NoError(t, err)
	require.NoError(t, m.Validate())
	assert.Equal(t, "blake3", m.Algorithm)

	root, err := m.RootDigest()
	require.NoError(t, err)
	assert.Equal(t, view.Digest, root.Hex())
}

func TestScanDigestIsDeterministic(t *testing.T) {
	setTestEnv(t)
	tree := writeTree(t)

	first, _, err := runCommand(t, "scan", tree, "--format", "json")
	require.NoError(t, err)
	second, _, err := runCommand(t, "scan", tree, "--format", "json")
	require.NoError(t, err)

	assert.Equal(t, scanView(t, first).Digest, scanView(t, second).Digest)
}

func TestScanSingleFileRoot(t *testing.T) {
	setTestEnv(t)
	file := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(file, []byte("payload"), 0o644))

	out, _, err := runCommand(t, "scan", file, "--format", "json")
	require.NoError(t, err)
	assert.NotEmpty(t, scanView(t, out).Digest)
}

func TestScanExcludeChangesDigest(t *testing.T) {
	setTestEnv(t)
	tree := writeTree(t)

	full, _, err := runCommand(t, "scan", tree, "--format", "json")
	require.NoError(t, err)
	partial, _, err := runCommand(t, "scan", tree, "--exclude", "docs", "--format", "json")
	require.NoError(t, err)

	assert.NotEqual(t, scanView(t, full).Digest, scanView(t, partial).Digest)
}

func TestScanPriorReuseKeepsDigest(t *testing.T) {
	setTestEnv(t)
	tree := writeTree(t)
	manifestPath := filepath.Join(t.TempDir(), "snap.json")

	first, _, err := runCommand(t, "scan", tree, "-o", manifestPath, "--format", "json")
	require.NoError(t, err)

	second, _, err := runCommand(t, "scan", tree,
		"--prior", manifestPath, "--trust-mtime", "--format", "json")
	require.NoError(t, err)

	assert.Equal(t, scanView(t, first).Digest, scanView(t, second).Digest)
}

func TestScanUnknownAlgorithmAborts(t *testing.T) {
	setTestEnv(t)
	tree := writeTree(t)

	_, _, err := runCommand(t, "scan", tree, "-a", "rot13")
	require.Error(t, err)
	assert.False(t, IsOutcome(err))
	assert.Equal(t, 2, ExitCode(err))
}

func TestEnvironmentOverridesAndFlagWins(t *testing.T) {
	setTestEnv(t)
	t.Setenv("DIRSUM_SCAN_ALGORITHM", "sha256")
	tree := writeTree(t)

	out, _, err := runCommand(t, "scan", tree, "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, "sha256", scanView(t, out).Algorithm)

	out, _, err = runCommand(t, "scan", tree, "-a", "blake3", "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, "blake3", scanView(t, out).Algorithm)
}

func TestVerifyCleanThenDrift(t *testing.T) {
	setTestEnv(t)
	tree := writeTree(t)
	manifestPath := filepath.Join(t.TempDir(), "snap.json")

	_, _, err := runCommand(t, "scan", tree, "-o", manifestPath, "--format", "json")
	require.NoError(t, err)

	out, _, err := runCommand(t, "verify", tree, "-m", manifestPath, "--format", "json")
	require.NoError(t, err)
	var clean display.VerifyView
	require.NoError(t, json.Unmarshal([]byte(out), &clean))
	assert.True(t, clean.InSync)

	require.NoError(t, os.WriteFile(filepath.Join(tree, "main.go"), []byte("package tampered\n"), 0o644))

	out, _, err = runCommand(t, "verify", tree, "-m", manifestPath, "--format", "json")
	require.Error(t, err)
	assert.True(t, IsOutcome(err))
	assert.Equal(t, 1, ExitCode(err))

	var dirty display.VerifyView
	require.NoError(t, json.Unmarshal([]byte(out), &dirty))
	assert.False(t, dirty.InSync)
	assert.Contains(t, dirty.Report.Changed, "main.go")
}

func TestVerifyRequiresManifestFlag(t *testing.T) {
	setTestEnv(t)
	tree := writeTree(t)

	_, _, err := runCommand(t, "verify", tree)
	require.Error(t, err)
	assert.Equal(t, 2, ExitCode(err))
}

func TestDiffReportsDrift(t *testing.T) {
	setTestEnv(t)
	tree := writeTree(t)
	before := filepath.Join(t.TempDir(), "before.json")
	after := filepath.Join(t.TempDir(), "after.json")

	_, _, err := runCommand(t, "scan", tree, "-o", before, "--format", "json")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(tree, "extra.txt"), []byte("new\n"), 0o644))
	_, _, err = runCommand(t, "scan", tree, "-o", after, "--format", "json")
	require.NoError(t, err)

	out, _, err := runCommand(t, "diff", before, after, "--format", "json")
	require.Error(t, err)
	assert.Equal(t, 1, ExitCode(err))

	var view display.DiffView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.False(t, view.InSync)
	assert.Contains(t, view.Report.Added, "extra.txt")

	_, _, err = runCommand(t, "diff", before, before, "--format", "json")
	assert.NoError(t, err)
}

func TestGenConfigWriteAndRefuseOverwrite(t *testing.T) {
	setTestEnv(t)

	out, _, err := runCommand(t, "gen-config", "-w")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")

	target := filepath.Join(paths.ConfigDir(), "dirsum.toml")
	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# algorithm")

	_, _, err = runCommand(t, "gen-config", "-w")
	require.Error(t, err)
	assert.Equal(t, 2, ExitCode(err))
}

func TestGenConfigEffectiveShowsMergedValues(t *testing.T) {
	setTestEnv(t)
	t.Setenv("DIRSUM_SCAN_ALGORITHM", "md5")

	out, _, err := runCommand(t, "gen-config", "--effective")
	require.NoError(t, err)
	assert.Contains(t, out, "algorithm")
	assert.Contains(t, out, "md5")
}

func TestAlgosListsRegistry(t *testing.T) {
	setTestEnv(t)

	out, _, err := runCommand(t, "algos")
	require.NoError(t, err)
	assert.Contains(t, out, "blake3")
	assert.Contains(t, out, "(default)")
	assert.Contains(t, out, "sha256")
	assert.Contains(t, out, "32-byte digest")
}

func TestTopicsListsEmbeddedDocs(t *testing.T) {
	setTestEnv(t)

	out, _, err := runCommand(t, "topics")
	require.NoError(t, err)
	assert.Contains(t, out, "Available help topics:")
	assert.Contains(t, out, "manifest-format")
	assert.Contains(t, out, "algorithms")
	assert.Contains(t, out, "configuration")
}

func TestHelpResolvesTopic(t *testing.T) {
	setTestEnv(t)

	out, _, err := runCommand(t, "help", "manifest-format")
	require.NoError(t, err)
	assert.Contains(t, out, "generated_at")
}

func TestVersionCommand(t *testing.T) {
	setTestEnv(t)

	out, _, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "dirsum version")
}

func TestNoCommandShowsHelpAndFails(t *testing.T) {
	setTestEnv(t)

	_, _, err := runCommand(t)
	require.Error(t, err)
	assert.Equal(t, 2, ExitCode(err))
}

func TestManWritesPages(t *testing.T) {
	setTestEnv(t)
	dir := t.TempDir()

	out, _, err := runCommand(t, "man", "-d", dir)
	require.NoError(t, err)
	assert.Contains(t, out, dir)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.NotEmpty(t, entries)

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Contains(t, names, "dirsum.1")
	assert.Contains(t, names, "dirsum_scan.1")
}
