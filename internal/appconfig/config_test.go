package appconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadFromPathOverridesOnlyGivenFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timeLimitSeconds: 30\n"), 0o600))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	require.Equal(t, 30, cfg.TimeLimitSeconds)
	require.Equal(t, Default().MaxNightsPerWorker, cfg.MaxNightsPerWorker)
}

func TestLoadFromPathRejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timeLimitSeconds: 0\n"), 0o600))

	_, err := LoadFromPath(path)
	require.Error(t, err)
}

func TestLoadFromPathMissingFile(t *testing.T) {
	_, err := LoadFromPath("/nonexistent/config.yaml")
	require.Error(t, err)
}
