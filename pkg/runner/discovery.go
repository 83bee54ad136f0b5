package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Discover resolves opts.Paths to the sorted, deduplicated set of
// markdown files to normalize. Files are named directly; directories
// are walked, skipping hidden entries and excluded trees.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	w := walker{
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		includes:   opts.IncludeGlobs,
		excludes:   opts.effectiveExcludes(),
		symlinks:   opts.FollowSymlinks,
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if info.IsDir() {
			found, err := w.walk(ctx, absPath)
			if err != nil {
				return nil, err
			}
			for _, f := range found {
				add(f)
			}
		} else if w.matches(absPath) {
			add(absPath)
		}
	}

	sort.Strings(files)
	return files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		return os.Getwd()
	}
	return filepath.Abs(workDir)
}

// walker carries the matching criteria through a directory walk.
type walker struct {
	workDir    string
	extensions []string
	includes   []string
	excludes   []string
	symlinks   bool
}

// walk collects matching markdown files under root. Hidden files and
// directories are skipped, as are excluded trees. Unreadable entries
// and broken symlinks are skipped rather than failing the run.
func (w walker) walk(ctx context.Context, root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if path != root && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			if anyGlob(w.rel(path), w.excludes) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := filepath.EvalSymlinks(path)
			if err != nil {
				return nil //nolint:nilerr // broken symlink, skip
			}
			info, err := os.Stat(target)
			if err != nil {
				return nil //nolint:nilerr // unreadable target, skip
			}
			if info.IsDir() {
				if !w.symlinks {
					return nil
				}
				// Walk the resolved target: WalkDir lstats its root,
				// so recursing on the link itself would loop.
				sub, err := w.walk(ctx, target)
				if err != nil {
					return err
				}
				files = append(files, sub...)
				return nil
			}
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}
		if w.matches(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

// rel returns path relative to the working directory for glob
// matching, falling back to the path itself.
func (w walker) rel(path string) string {
	relPath, err := filepath.Rel(w.workDir, path)
	if err != nil {
		return path
	}
	return relPath
}

// matches reports whether a file passes the extension, exclude, and
// include criteria.
func (w walker) matches(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	found := false
	for _, e := range w.extensions {
		if strings.ToLower(e) == ext {
			found = true
			break
		}
	}
	if !found {
		return false
	}

	relPath := w.rel(path)
	if anyGlob(relPath, w.excludes) {
		return false
	}
	if len(w.includes) > 0 && !anyGlob(relPath, w.includes) {
		return false
	}
	return true
}

func anyGlob(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		if globMatch(relPath, pattern) {
			return true
		}
	}
	return false
}

// globMatch matches a relative path against a glob pattern. A "**"
// segment spans any number of path segments; other segments use
// filepath.Match rules. A pattern without a separator also matches
// against the basename alone, so "*.md" works at any depth.
func globMatch(path, pattern string) bool {
	path = filepath.ToSlash(path)
	pattern = filepath.ToSlash(pattern)

	if !strings.Contains(pattern, "/") {
		if ok, err := filepath.Match(pattern, filepath.Base(path)); err == nil && ok {
			return true
		}
	}
	return matchSegments(strings.Split(path, "/"), strings.Split(pattern, "/"))
}

func matchSegments(path, pattern []string) bool {
	if len(pattern) == 0 {
		return len(path) == 0
	}
	if pattern[0] == "**" {
		if matchSegments(path, pattern[1:]) {
			return true
		}
		if len(path) == 0 {
			return false
		}
		return matchSegments(path[1:], pattern)
	}
	if len(path) == 0 {
		return false
	}
	if ok, err := filepath.Match(pattern[0], path[0]); err != nil || !ok {
		return false
	}
	return matchSegments(path[1:], pattern[1:])
}
