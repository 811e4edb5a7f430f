// Package gitignore keeps the workspace artifacts this tool creates out of
// version control by appending exclude patterns to the enclosing git
// repository's hidden info/exclude file.
//
// Writing to info/exclude instead of a checked-in .gitignore makes ignoring
// work without asking users to commit anything. The exclude file lives in the
// common git dir: linked worktrees share a single info/exclude.
package gitignore

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/storage/filesystem"

	apperrors "github.com/yeswalrus/bazel-compilation-database/internal/errors"
	"github.com/yeswalrus/bazel-compilation-database/internal/logfields"
)

// Entry is an exclude pattern with the explanatory comment written above it.
// Patterns are relative to the workspace root; Ensure roots them at the
// repository root.
type Entry struct {
	Pattern string
	Comment string
}

// Header precedes the entries appended by this tool.
const Header = "### Automatically added by outputbase"

// DefaultEntries returns the patterns every workspace needs. The symlink
// patterns must not end with a trailing slash, or git would only match
// directories.
func DefaultEntries() []Entry {
	return []Entry{
		{
			Pattern: "external",
			Comment: "# Ignore the external convenience symlink. It differs between hosts, so it should not be checked in.",
		},
		{
			Pattern: "bazel-*",
			Comment: "# Ignore links to Bazel's output. The * covers the bazel-<workspace name> link, which depends on the checkout directory name.",
		},
	}
}

// Ensure appends any missing entries for workspaceDir to the enclosing git
// repository's info/exclude file. The workspace may sit anywhere inside the
// repository; patterns get prefixed with its path from the repository root.
// A workspace that is not inside a git repository is left alone.
func Ensure(workspaceDir string, entries []Entry) error {
	repo, err := git.PlainOpenWithOptions(workspaceDir, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		slog.Debug("Not inside a git repository, skipping exclude maintenance",
			logfields.Workspace(workspaceDir))
		return nil
	}
	if err != nil {
		return apperrors.Wrap(err, apperrors.CategoryWorkspace, apperrors.SeverityFatal,
			"cannot open enclosing git repository").WithContext("workspace", workspaceDir)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return apperrors.Wrap(err, apperrors.CategoryWorkspace, apperrors.SeverityFatal,
			"cannot determine git worktree root").WithContext("workspace", workspaceDir)
	}

	prefix, err := repoPrefix(wt.Filesystem.Root(), workspaceDir)
	if err != nil {
		return err
	}

	commonDir, err := commonGitDir(repo)
	if err != nil {
		return err
	}

	// Some older git versions do not auto-create .git/info.
	infoDir := filepath.Join(commonDir, "info")
	if err := os.MkdirAll(infoDir, 0o750); err != nil {
		return apperrors.Wrap(err, apperrors.CategoryFileSystem, apperrors.SeverityFatal,
			"cannot create git info directory").WithContext("dir", infoDir)
	}

	excludePath := filepath.Join(infoDir, "exclude")
	added, err := appendMissing(excludePath, prefix, entries)
	if err != nil {
		return err
	}
	if added > 0 {
		slog.Info("Added exclude entries for generated workspace artifacts",
			logfields.Path(excludePath), slog.Int("entries", added))
	}
	return nil
}

// repoPrefix returns the workspace's path from the repository root as a
// pattern prefix ("" for the root itself, "sub/ws/" below it).
func repoPrefix(repoRoot, workspaceDir string) (string, error) {
	root, err := filepath.EvalSymlinks(repoRoot)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CategoryFileSystem, apperrors.SeverityFatal,
			"cannot resolve repository root").WithContext("root", repoRoot)
	}
	ws, err := filepath.EvalSymlinks(workspaceDir)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CategoryFileSystem, apperrors.SeverityFatal,
			"cannot resolve workspace directory").WithContext("workspace", workspaceDir)
	}

	rel, err := filepath.Rel(root, ws)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", apperrors.New(apperrors.CategoryInternal, apperrors.SeverityFatal,
			"workspace is not inside the repository worktree").
			WithContext("root", root).WithContext("workspace", ws)
	}
	if rel == "." {
		return "", nil
	}
	return filepath.ToSlash(rel) + "/", nil
}

// commonGitDir returns the directory holding the shared info/exclude. A
// linked worktree's git dir carries a commondir pointer back to the main
// repository; despite current gitignore docs there is just one info/exclude,
// in the common dir.
func commonGitDir(repo *git.Repository) (string, error) {
	storage, ok := repo.Storer.(*filesystem.Storage)
	if !ok {
		return "", apperrors.New(apperrors.CategoryInternal, apperrors.SeverityFatal,
			"repository storage is not filesystem-backed")
	}
	gitDir := storage.Filesystem().Root()

	if data, err := os.ReadFile(filepath.Join(gitDir, "commondir")); err == nil {
		p := strings.TrimSpace(string(data))
		if !filepath.IsAbs(p) {
			p = filepath.Join(gitDir, p)
		}
		gitDir = filepath.Clean(p)
	}
	return gitDir, nil
}

// appendMissing appends entries whose pattern line is not already present and
// reports how many were added. Existing lines are only ever appended to,
// never rewritten: an entry like `/foo\ ` (escaped trailing space) must
// survive untouched.
func appendMissing(excludePath, prefix string, entries []Entry) (int, error) {
	existing, err := os.ReadFile(excludePath)
	if err != nil && !os.IsNotExist(err) {
		return 0, apperrors.Wrap(err, apperrors.CategoryFileSystem, apperrors.SeverityFatal,
			"cannot read exclude file").WithContext("path", excludePath)
	}

	present := make(map[string]bool)
	for _, line := range strings.Split(string(existing), "\n") {
		present[strings.TrimRight(line, " \t")] = true
	}

	var missing []Entry
	for _, e := range entries {
		if !present["/"+prefix+e.Pattern] {
			missing = append(missing, e)
		}
	}
	if len(missing) == 0 {
		return 0, nil
	}

	var b strings.Builder
	content := string(existing)
	if content != "" {
		if !strings.HasSuffix(content, "\n") {
			b.WriteString("\n")
		}
		// Blank spacer before the header when the file already has content.
		if strings.TrimRight(content, "\n \t") != "" && !strings.HasSuffix(content, "\n\n") {
			b.WriteString("\n")
		}
	}
	b.WriteString(Header + "\n")
	for _, e := range missing {
		b.WriteString(e.Comment + "\n")
		b.WriteString("/" + prefix + e.Pattern + "\n")
	}

	f, err := os.OpenFile(excludePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, apperrors.Wrap(err, apperrors.CategoryFileSystem, apperrors.SeverityFatal,
			"cannot open exclude file").WithContext("path", excludePath)
	}
	defer func() {
		_ = f.Close()
	}()

	if _, err := f.WriteString(b.String()); err != nil {
		return 0, apperrors.Wrap(err, apperrors.CategoryFileSystem, apperrors.SeverityFatal,
			"cannot append to exclude file").WithContext("path", excludePath)
	}
	return len(missing), nil
}
