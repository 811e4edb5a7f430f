package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yeswalrus/bazel-compilation-database/internal/errors"
	"github.com/yeswalrus/bazel-compilation-database/internal/workspace"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.Equal(t, workspace.DefaultMarkerNames, cfg.Marker.Names)
	require.Equal(t, ".", cfg.Generated.Directory)
	require.Equal(t, 2*time.Second, cfg.Watch.Debounce())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)

	var te *apperrors.ToolError
	require.ErrorAs(t, err, &te)
	require.Equal(t, apperrors.CategoryConfig, te.Category)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outputbase.yaml")
	require.NoError(t, os.WriteFile(path, []byte("marker:\n  path: /ws/WORKSPACE\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/ws/WORKSPACE", cfg.Marker.Path)
	require.Equal(t, workspace.DefaultMarkerNames, cfg.Marker.Names)
	require.Equal(t, ".", cfg.Generated.Directory)
	require.Equal(t, 2, cfg.Watch.DebounceSeconds)
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv("OUTPUTBASE_TEST_DIR", "/data/gen")

	path := filepath.Join(t.TempDir(), "outputbase.yaml")
	content := "generated:\n  directory: ${OUTPUTBASE_TEST_DIR}/output_base\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/data/gen/output_base", cfg.Generated.Directory)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outputbase.yaml")
	require.NoError(t, os.WriteFile(path, []byte("marker: ["), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestInit_WritesLoadableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outputbase.yaml")
	require.NoError(t, Init(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "bazel-gen/output_base", cfg.Generated.Directory)
}

func TestInit_RefusesOverwriteWithoutForce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outputbase.yaml")
	require.NoError(t, os.WriteFile(path, []byte("marker: {}\n"), 0o644))

	require.Error(t, Init(path, false))
	require.NoError(t, Init(path, true))
}
