// Package outputbase resolves the absolute path of Bazel's per-workspace
// output base from the location of a workspace marker file.
//
// Bazel materializes the workspace root inside the output base as
// <output base>/execroot/<workspace name>, so the symlink-resolved marker
// file sits two directories below the output base.
package outputbase

import (
	"path/filepath"

	apperrors "github.com/yeswalrus/bazel-compilation-database/internal/errors"
)

// Layout describes the Bazel-managed directories derived from a resolved
// marker file.
type Layout struct {
	// Marker is the symlink-resolved absolute path of the workspace marker file.
	Marker string
	// ExecRoot is the directory containing the resolved marker file.
	ExecRoot string
	// OutputBase is Bazel's per-workspace output base, the parent of ExecRoot.
	OutputBase string
}

// ExternalDir returns the directory inside the output base that holds
// fetched external repositories.
func (l Layout) ExternalDir() string {
	return filepath.Join(l.OutputBase, "external")
}

// Resolve computes the output base for the workspace marker file at markerPath.
//
// The marker path is dereferenced through any symlinks first, so a marker
// reached through a convenience symlink resolves to its real location inside
// the execroot rather than to the symlink itself. A marker that does not
// exist or cannot be dereferenced is a fatal error; no partial result is
// returned.
func Resolve(markerPath string) (Layout, error) {
	abs, err := filepath.Abs(markerPath)
	if err != nil {
		return Layout{}, apperrors.Wrap(err, apperrors.CategoryFileSystem, apperrors.SeverityFatal,
			"cannot make marker path absolute").WithContext("marker", markerPath)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return Layout{}, apperrors.Wrap(err, apperrors.CategoryFileSystem, apperrors.SeverityFatal,
			"cannot resolve workspace marker").WithContext("marker", markerPath)
	}

	execRoot := filepath.Dir(resolved)
	return Layout{
		Marker:     resolved,
		ExecRoot:   execRoot,
		OutputBase: filepath.Dir(execRoot),
	}, nil
}
