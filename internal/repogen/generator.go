// Package repogen writes the generated repository package that exposes the
// resolved output base as a loadable Starlark constant.
//
// The package consists of two files: an empty BUILD.bazel, which makes the
// directory loadable, and output_base.bzl holding the single constant
// assignment. Both are overwritten wholesale on every run, so generating
// twice with unchanged inputs yields byte-identical output.
package repogen

import (
	"os"
	"path/filepath"

	apperrors "github.com/yeswalrus/bazel-compilation-database/internal/errors"
)

const (
	// BuildFileName is the empty build declaration marking the generated
	// directory as a package.
	BuildFileName = "BUILD.bazel"

	// ConstantFileName is the Starlark file holding the constant assignment.
	ConstantFileName = "output_base.bzl"

	// ConstantName is the symbol exposed to loading build declarations.
	ConstantName = "OUTPUT_BASE"
)

// ConstantFile renders the content of the constant file for the given output
// base path. The path is embedded verbatim between single quotes; no escaping
// is performed, matching what Bazel's repository_ctx.file historically
// received for this rule.
func ConstantFile(outputBase string) []byte {
	return []byte(ConstantName + " = '" + outputBase + "'")
}

// Generator writes the generated package into a fixed directory.
type Generator struct {
	dir string
}

// NewGenerator creates a generator targeting dir.
func NewGenerator(dir string) *Generator {
	return &Generator{dir: dir}
}

// Dir returns the directory the generator writes into.
func (g *Generator) Dir() string {
	return g.dir
}

// Generate writes BUILD.bazel and output_base.bzl for the given output base
// path, creating the target directory if needed.
func (g *Generator) Generate(outputBase string) error {
	if err := os.MkdirAll(g.dir, 0o750); err != nil {
		return apperrors.Wrap(err, apperrors.CategoryFileSystem, apperrors.SeverityFatal,
			"cannot create generated package directory").WithContext("dir", g.dir)
	}

	buildPath := filepath.Join(g.dir, BuildFileName)
	if err := os.WriteFile(buildPath, []byte{}, 0o644); err != nil {
		return apperrors.Wrap(err, apperrors.CategoryFileSystem, apperrors.SeverityFatal,
			"cannot write build file").WithContext("path", buildPath)
	}

	bzlPath := filepath.Join(g.dir, ConstantFileName)
	if err := os.WriteFile(bzlPath, ConstantFile(outputBase), 0o644); err != nil {
		return apperrors.Wrap(err, apperrors.CategoryFileSystem, apperrors.SeverityFatal,
			"cannot write constant file").WithContext("path", bzlPath)
	}

	return nil
}
