package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yeswalrus/bazel-compilation-database/internal/config"
	"github.com/yeswalrus/bazel-compilation-database/internal/repogen"
)

// fakeWorkspace creates <base>/execroot/WORKSPACE and returns the resolved
// base path and the marker path.
func fakeWorkspace(t *testing.T) (base, marker string) {
	t.Helper()

	base, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	execRoot := filepath.Join(base, "execroot")
	require.NoError(t, os.MkdirAll(execRoot, 0o750))

	marker = filepath.Join(execRoot, "WORKSPACE")
	require.NoError(t, os.WriteFile(marker, []byte{}, 0o644))
	return base, marker
}

func TestGenerateCmd_Run(t *testing.T) {
	base, marker := fakeWorkspace(t)
	out := filepath.Join(t.TempDir(), "gen")

	root := &CLI{Config: filepath.Join(t.TempDir(), "absent.yaml")}
	cmd := &GenerateCmd{Marker: marker, Output: out}
	require.NoError(t, cmd.Run(&Global{}, root))

	bzl, err := os.ReadFile(filepath.Join(out, repogen.ConstantFileName))
	require.NoError(t, err)
	require.Equal(t, "OUTPUT_BASE = '"+base+"'", string(bzl))

	build, err := os.ReadFile(filepath.Join(out, repogen.BuildFileName))
	require.NoError(t, err)
	require.Empty(t, build)
}

func TestGenerateCmd_Run_MissingMarker(t *testing.T) {
	root := &CLI{Config: filepath.Join(t.TempDir(), "absent.yaml")}
	cmd := &GenerateCmd{
		Marker: filepath.Join(t.TempDir(), "WORKSPACE"),
		Output: t.TempDir(),
	}
	require.Error(t, cmd.Run(&Global{}, root))
}

func TestFindMarker_FlagWinsOverConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Marker.Path = "/from/config/WORKSPACE"

	marker, err := findMarker("/from/flag/WORKSPACE", cfg)
	require.NoError(t, err)
	require.Equal(t, "/from/flag/WORKSPACE", marker)

	marker, err = findMarker("", cfg)
	require.NoError(t, err)
	require.Equal(t, "/from/config/WORKSPACE", marker)
}

func TestResolveOutputDir(t *testing.T) {
	cfg := config.Default()
	cfg.Generated.Directory = "gen/output_base"

	require.Equal(t, "cli/dir", resolveOutputDir("cli/dir", cfg))
	require.Equal(t, "gen/output_base", resolveOutputDir("", cfg))
}

func TestRegenerate_WritesPackage(t *testing.T) {
	base, marker := fakeWorkspace(t)
	out := t.TempDir()

	gen := repogen.NewGenerator(out)
	require.NoError(t, regenerate(gen, marker, "job-1"))

	bzl, err := os.ReadFile(filepath.Join(out, repogen.ConstantFileName))
	require.NoError(t, err)
	require.Equal(t, "OUTPUT_BASE = '"+base+"'", string(bzl))
}

func TestRegenerate_MissingMarker_Fails(t *testing.T) {
	gen := repogen.NewGenerator(t.TempDir())
	require.Error(t, regenerate(gen, filepath.Join(t.TempDir(), "WORKSPACE"), "job-1"))
}
