package config

import (
	"errors"
	"path/filepath"
	"time"
)

// ErrTemplateIntegrity is returned when the template lacks a table or
// directory the initializer writes into.
var ErrTemplateIntegrity = errors.New("template integrity")

const DescriptorName = "pyproject.toml"
const LicenseName = "LICENSE"

// PlaceholderToken is the stand-in for the project name used across the template tree.
const PlaceholderToken = "project_name"

// SourceDir holds the package directory named after PlaceholderToken.
const SourceDir = "src"

// DefaultPythonVersion is written when the python version prompt is left empty.
const DefaultPythonVersion = ">=3.10"

// DefaultExcludes are doublestar globs, relative to the project root, that the
// tree renamer never descends into or rewrites.
var DefaultExcludes = []string{
	".git",
	".hg",
	".svn",
	".venv",
	"venv",
	"node_modules",
	".mypy_cache",
	".pytest_cache",
	".ruff_cache",
	"**/__pycache__",
	"**/*.egg-info",
}

// Options carries everything a single initialization run needs.
type Options struct {
	Dir         string   // Project root, the template checkout
	Validate    bool     // Echo the answers and ask for confirmation
	Verbose     bool     // Print per-step detail
	Excludes    []string // Extra exclusion globs, added to DefaultExcludes
	AnswersPath string   // Optional YAML script replacing the terminal
	Now         func() time.Time
}

// DefaultOptions returns the options of a flagless run in the current directory.
func DefaultOptions() Options {
	return Options{
		Dir:      ".",
		Validate: true,
		Now:      time.Now,
	}
}

// AllExcludes returns DefaultExcludes followed by the user supplied globs.
func (o Options) AllExcludes() []string {
	all := make([]string, 0, len(DefaultExcludes)+len(o.Excludes))
	all = append(all, DefaultExcludes...)
	return append(all, o.Excludes...)
}

// DescriptorPath returns the location of pyproject.toml under the project root.
func (o Options) DescriptorPath() string {
	return filepath.Join(o.Dir, DescriptorName)
}

// PackageDir returns the placeholder package directory under the project root.
func (o Options) PackageDir() string {
	return filepath.Join(o.Dir, SourceDir, PlaceholderToken)
}
