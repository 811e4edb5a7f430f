// Package workspace locates the Bazel workspace root and its marker file.
//
// Discovery honors BUILD_WORKSPACE_DIRECTORY (set by "bazel run") when
// present, and otherwise walks upward from a starting directory until a
// marker file is found.
package workspace
