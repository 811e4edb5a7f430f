package gitignore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/require"
)

// newRepo initializes a git repository and returns its resolved root.
func newRepo(t *testing.T) string {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	_, err = git.PlainInit(root, false)
	require.NoError(t, err)
	return root
}

func excludePath(root string) string {
	return filepath.Join(root, ".git", "info", "exclude")
}

func TestEnsure_OutsideRepo_IsNoOp(t *testing.T) {
	require.NoError(t, Ensure(t.TempDir(), DefaultEntries()))
}

func TestEnsure_AppendsDefaultEntries(t *testing.T) {
	root := newRepo(t)

	require.NoError(t, Ensure(root, DefaultEntries()))

	data, err := os.ReadFile(excludePath(root))
	require.NoError(t, err)
	lines := strings.Split(string(data), "\n")
	require.Contains(t, lines, Header)
	require.Contains(t, lines, "/external")
	require.Contains(t, lines, "/bazel-*")
}

func TestEnsure_Idempotent(t *testing.T) {
	root := newRepo(t)

	require.NoError(t, Ensure(root, DefaultEntries()))
	first, err := os.ReadFile(excludePath(root))
	require.NoError(t, err)

	require.NoError(t, Ensure(root, DefaultEntries()))
	second, err := os.ReadFile(excludePath(root))
	require.NoError(t, err)

	require.Equal(t, string(first), string(second))
}

func TestEnsure_NestedWorkspace_PrefixesPatterns(t *testing.T) {
	root := newRepo(t)
	ws := filepath.Join(root, "sub", "ws")
	require.NoError(t, os.MkdirAll(ws, 0o750))

	require.NoError(t, Ensure(ws, DefaultEntries()))

	data, err := os.ReadFile(excludePath(root))
	require.NoError(t, err)
	lines := strings.Split(string(data), "\n")
	require.Contains(t, lines, "/sub/ws/external")
	require.Contains(t, lines, "/sub/ws/bazel-*")
	require.NotContains(t, lines, "/external")
}

func TestEnsure_PreservesExistingContent(t *testing.T) {
	root := newRepo(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git", "info"), 0o750))
	require.NoError(t, os.WriteFile(excludePath(root), []byte("/precious\n"), 0o644))

	require.NoError(t, Ensure(root, DefaultEntries()))

	data, err := os.ReadFile(excludePath(root))
	require.NoError(t, err)
	content := string(data)
	require.True(t, strings.HasPrefix(content, "/precious\n"))
	// Spacer line between prior content and the appended header.
	require.Contains(t, content, "/precious\n\n"+Header+"\n")
	require.Contains(t, content, "/external")
}

func TestEnsure_OnlyAppendsMissingPatterns(t *testing.T) {
	root := newRepo(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git", "info"), 0o750))
	require.NoError(t, os.WriteFile(excludePath(root), []byte("/external\n"), 0o644))

	require.NoError(t, Ensure(root, DefaultEntries()))

	data, err := os.ReadFile(excludePath(root))
	require.NoError(t, err)
	require.Equal(t, 1, strings.Count(string(data), "/external\n"))
	require.Contains(t, strings.Split(string(data), "\n"), "/bazel-*")
}

func TestEnsure_CustomEntry(t *testing.T) {
	root := newRepo(t)

	entries := append(DefaultEntries(), Entry{
		Pattern: "bazel-gen/output_base/",
		Comment: "# Ignore the generated output base package.",
	})
	require.NoError(t, Ensure(root, entries))

	data, err := os.ReadFile(excludePath(root))
	require.NoError(t, err)
	require.Contains(t, strings.Split(string(data), "\n"), "/bazel-gen/output_base/")
}
