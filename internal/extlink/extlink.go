// Package extlink maintains the "external" convenience symlink at the
// workspace root, pointing into the output base's external repository
// directory.
//
// The link target traverses through bazel-out rather than using an absolute
// path, which keeps the workspace position-independent: the workspace can be
// moved without relinking as long as bazel-out itself is refreshed.
package extlink

import (
	"log/slog"
	"os"
	"path/filepath"

	apperrors "github.com/yeswalrus/bazel-compilation-database/internal/errors"
	"github.com/yeswalrus/bazel-compilation-database/internal/logfields"
)

// LinkName is the name of the convenience symlink created at the workspace root.
const LinkName = "external"

// linkTarget is relative to the workspace root: bazel-out resolves into
// <output base>/execroot/<workspace>/bazel-out, so three levels up is the
// output base itself.
const linkTarget = "bazel-out/../../../external"

// Ensure creates or repairs the external symlink in workspaceDir.
//
// Preconditions: bazel-out must exist at the workspace root (it is created by
// any build). An existing "external" entry that is not a symlink is an error
// and is never deleted; a symlink pointing at the wrong place is replaced.
func Ensure(workspaceDir string) error {
	bazelOut := filepath.Join(workspaceDir, "bazel-out")
	if _, err := os.Lstat(bazelOut); err != nil {
		return apperrors.Wrap(err, apperrors.CategoryWorkspace, apperrors.SeverityFatal,
			"bazel-out is missing; remove --symlink_prefix and --experimental_convenience_symlinks so the workspace mirrors the compilation environment").
			WithContext("workspace", workspaceDir)
	}

	source := filepath.Join(workspaceDir, LinkName)
	if _, err := os.Lstat(source); err == nil {
		current, err := os.Readlink(source)
		if err != nil {
			return apperrors.Wrap(err, apperrors.CategoryWorkspace, apperrors.SeverityFatal,
				"external already exists but is not a symlink; it is reserved by Bazel, rename or delete it and rerun").
				WithContext("path", source)
		}
		if current == linkTarget {
			slog.Debug("External symlink already correct", logfields.Path(source))
			return nil
		}
		slog.Warn("External symlink points to the wrong place, relinking", logfields.Path(source))
		if err := os.Remove(source); err != nil {
			return apperrors.Wrap(err, apperrors.CategoryFileSystem, apperrors.SeverityFatal,
				"cannot remove stale external symlink").WithContext("path", source)
		}
	}

	if err := os.Symlink(linkTarget, source); err != nil {
		return apperrors.Wrap(err, apperrors.CategoryFileSystem, apperrors.SeverityFatal,
			"cannot create external symlink").WithContext("path", source)
	}

	slog.Info("Created external symlink", logfields.Path(source))
	return nil
}
