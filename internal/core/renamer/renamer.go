// Package renamer replaces the placeholder project name across the template
// tree and renames the placeholder package directory.
//
// Work happens in two phases: Enumerate decides which files are in scope, and
// Replace rewrites only those. Rewrites go through a temporary file and a
// rename, so an interrupted run never leaves a half-written file. Replacing is
// idempotent only when the new name does not itself contain the placeholder.
package renamer

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/nightconcept/pyinit-go/internal/core/config"
	"github.com/nightconcept/pyinit-go/internal/core/fsutil"
)

// ErrPackageDirMissing is returned by RenamePackage when src/project_name does
// not exist. It wraps config.ErrTemplateIntegrity.
var ErrPackageDirMissing = fmt.Errorf("%w: package directory missing", config.ErrTemplateIntegrity)

// Result summarises a Replace pass. Paths are slash separated and relative to the root.
type Result struct {
	Rewritten []string
	Binary    []string
	Unchanged int
}

// Enumerate returns every regular file under root that no exclusion glob
// matches, as slash separated paths relative to root, in lexical order.
// A directory matching a glob is not descended into. Symlinks are ignored.
func Enumerate(root string, excludes []string) ([]string, error) {
	for _, pattern := range excludes {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, doublestar.ErrBadPattern)
		}
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if excluded(rel, excludes) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return files, nil
}

func excluded(rel string, excludes []string) bool {
	for _, pattern := range excludes {
		if match, _ := doublestar.Match(pattern, rel); match {
			return true
		}
	}
	return false
}

// Replace substitutes every occurrence of the placeholder token with name in
// each of files. Files containing a NUL byte are treated as binary and left
// alone, as are files that do not contain the token.
func Replace(root string, files []string, name string) (Result, error) {
	var res Result
	token := []byte(config.PlaceholderToken)
	replacement := []byte(name)

	for _, rel := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		data, err := os.ReadFile(path)
		if err != nil {
			return res, fmt.Errorf("reading %s: %w", rel, err)
		}
		if bytes.IndexByte(data, 0) >= 0 {
			res.Binary = append(res.Binary, rel)
			continue
		}
		if !bytes.Contains(data, token) {
			res.Unchanged++
			continue
		}
		if err := fsutil.ReplaceFile(path, bytes.ReplaceAll(data, token, replacement)); err != nil {
			return res, fmt.Errorf("rewriting %s: %w", rel, err)
		}
		res.Rewritten = append(res.Rewritten, rel)
	}
	return res, nil
}

// RenamePackage moves the placeholder package directory dir (src/project_name)
// to a sibling called name.
func RenamePackage(dir, name string) error {
	from := dir
	to := filepath.Join(filepath.Dir(dir), name)

	info, err := os.Stat(from)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrPackageDirMissing, from)
		}
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrPackageDirMissing, from)
	}
	if from == to {
		return nil
	}
	if _, err := os.Lstat(to); err == nil {
		return fmt.Errorf("renaming %s: %s already exists", from, to)
	}
	if err := os.Rename(from, to); err != nil {
		return fmt.Errorf("renaming %s: %w", from, err)
	}
	return nil
}
