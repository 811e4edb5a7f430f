package workspace

import (
	"os"
	"path/filepath"

	apperrors "github.com/yeswalrus/bazel-compilation-database/internal/errors"
)

// BuildWorkspaceEnv is set by Bazel when a target is started via "bazel run".
const BuildWorkspaceEnv = "BUILD_WORKSPACE_DIRECTORY"

// DefaultMarkerNames lists the marker files identifying a workspace root, in
// precedence order.
var DefaultMarkerNames = []string{"MODULE.bazel", "WORKSPACE.bazel", "WORKSPACE"}

// FindMarker locates the workspace marker file for the workspace containing
// startDir. If BUILD_WORKSPACE_DIRECTORY is set, only that directory is
// inspected; otherwise the search walks upward from startDir to the
// filesystem root. markerNames may be nil to use DefaultMarkerNames.
func FindMarker(startDir string, markerNames []string) (string, error) {
	if len(markerNames) == 0 {
		markerNames = DefaultMarkerNames
	}

	if ws := os.Getenv(BuildWorkspaceEnv); ws != "" {
		marker, ok := markerIn(ws, markerNames)
		if !ok {
			return "", apperrors.New(apperrors.CategoryWorkspace, apperrors.SeverityFatal,
				"no workspace marker in "+BuildWorkspaceEnv).WithContext("dir", ws)
		}
		return marker, nil
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CategoryWorkspace, apperrors.SeverityFatal,
			"cannot make start directory absolute").WithContext("dir", startDir)
	}

	for {
		if marker, ok := markerIn(dir, markerNames); ok {
			return marker, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", apperrors.New(apperrors.CategoryWorkspace, apperrors.SeverityFatal,
				"no workspace marker found").WithContext("start", startDir)
		}
		dir = parent
	}
}

// Dir returns the workspace root directory for the workspace containing
// startDir, i.e. the directory holding the marker file.
func Dir(startDir string, markerNames []string) (string, error) {
	marker, err := FindMarker(startDir, markerNames)
	if err != nil {
		return "", err
	}
	return filepath.Dir(marker), nil
}

// markerIn reports the first marker name present in dir. Names are tried in
// order so MODULE.bazel wins over a stale WORKSPACE.
func markerIn(dir string, markerNames []string) (string, bool) {
	for _, name := range markerNames {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}
