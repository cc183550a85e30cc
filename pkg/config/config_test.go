package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dirsum/pkg/config"
	"github.com/arthur-debert/dirsum/pkg/errors"
	"github.com/arthur-debert/dirsum/pkg/paths"
)

// isolate points the config search at an empty directory so only the
// layers a test sets up take part.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(paths.EnvConfigDir, dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	s, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "blake3", s.Scan.Algorithm)
	assert.Equal(t, 128, s.Scan.BlockSize)
	assert.Equal(t, 0, s.Scan.Jobs)
	assert.False(t, s.Scan.KeepGoing)
	assert.True(t, s.Scan.SkipSpecial)
	assert.False(t, s.Scan.TrustMTime)
	assert.Empty(t, s.Scan.Exclude)

	assert.Equal(t, "auto", s.Output.Format)
	assert.True(t, s.Output.Progress)
}

func TestLoadUserFileTOML(t *testing.T) {
	dir := isolate(t)
	content := "[scan]\nalgorithm = \"md5\"\nblock_size = 64\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dirsum.toml"), []byte(content), 0o644))

	s, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "md5", s.Scan.Algorithm)
	assert.Equal(t, 64, s.Scan.BlockSize)
	// Untouched keys keep their defaults.
	assert.Equal(t, 0, s.Scan.Jobs)
	assert.True(t, s.Output.Progress)
}

func TestLoadUserFileYAML(t *testing.T) {
	dir := isolate(t)
	content := "scan:\n  algorithm: sha256\n  exclude: [\".git\", \"*.tmp\"]\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dirsum.yaml"), []byte(content), 0o644))

	s, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "sha256", s.Scan.Algorithm)
	assert.Equal(t, []string{".git", "*.tmp"}, s.Scan.Exclude)
}

func TestLaterCandidateWins(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dirsum.toml"),
		[]byte("[scan]\nalgorithm = \"md5\"\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dirsum.yaml"),
		[]byte("scan:\n  algorithm: sha256\n"), 0o644))

	s, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "sha256", s.Scan.Algorithm)
}

func TestEnvironmentOverridesEverything(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dirsum.toml"),
		[]byte("[scan]\nalgorithm = \"md5\"\n"), 0o644))

	t.Setenv("DIRSUM_SCAN_ALGORITHM", "sha256")
	t.Setenv("DIRSUM_SCAN_BLOCK_SIZE", "512")
	t.Setenv("DIRSUM_SCAN_KEEP_GOING", "true")
	t.Setenv("DIRSUM_SCAN_EXCLUDE", "*.log,build/**")
	t.Setenv("DIRSUM_OUTPUT_FORMAT", "json")

	s, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "sha256", s.Scan.Algorithm)
	assert.Equal(t, 512, s.Scan.BlockSize)
	assert.True(t, s.Scan.KeepGoing)
	assert.Equal(t, []string{"*.log", "build/**"}, s.Scan.Exclude)
	assert.Equal(t, "json", s.Output.Format)
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dirsum.toml"),
		[]byte("= = not toml = ="), 0o644))

	_, err := config.Load()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestBlockSizeBytes(t *testing.T) {
	s := config.ScanSettings{BlockSize: 128}
	assert.Equal(t, 128*1024, s.BlockSizeBytes())
}

func TestGenerateConfigContent(t *testing.T) {
	content := config.GenerateConfigContent()

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		assert.True(t, strings.HasPrefix(trimmed, "["),
			"value line %q must be commented out", line)
	}
	assert.Contains(t, content, "[scan]")
	assert.Contains(t, content, "# algorithm")
}

func TestEffectiveConfig(t *testing.T) {
	isolate(t)
	s, err := config.Load()
	require.NoError(t, err)

	out, err := config.EffectiveConfig(s)
	require.NoError(t, err)
	assert.Contains(t, out, "[scan]")
	assert.Contains(t, out, "block_size = 128")
	assert.Contains(t, out, "[output]")
}
