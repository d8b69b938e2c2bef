// Package descriptor loads, rewrites and saves the pyproject.toml of a template.
package descriptor

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/nightconcept/pyinit-go/internal/core/config"
	"github.com/nightconcept/pyinit-go/internal/core/fsutil"
)

// ErrDescriptorNotFound is returned by Load when pyproject.toml does not exist.
var ErrDescriptorNotFound = errors.New("descriptor not found")

// ErrTemplateIntegrity is returned by Apply when [project] or
// [project.optional-dependencies] is missing.
var ErrTemplateIntegrity = config.ErrTemplateIntegrity

// Author is one entry of project.authors.
type Author struct {
	Name  string `toml:"name"`
	Email string `toml:"email"`
}

// Project is the typed view of the [project] table.
type Project struct {
	Name                 string              `toml:"name"`
	Description          string              `toml:"description"`
	Python               string              `toml:"python"`
	Authors              []Author            `toml:"authors"`
	Dependencies         []string            `toml:"dependencies"`
	OptionalDependencies map[string][]string `toml:"optional-dependencies"`
}

// Descriptor is a decoded pyproject.toml. The full document is kept so that
// sections the initializer does not know about survive a rewrite.
type Descriptor struct {
	doc     map[string]interface{}
	Project Project
}

type typedView struct {
	Project Project `toml:"project"`
}

// Load reads pyproject.toml from dirPath.
func Load(dirPath string) (*Descriptor, error) {
	fullPath := filepath.Join(dirPath, config.DescriptorName)
	data, err := os.ReadFile(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %w", ErrDescriptorNotFound, err)
		}
		return nil, fmt.Errorf("reading %s: %w", fullPath, err)
	}
	return Parse(data)
}

// Parse decodes descriptor content.
func Parse(data []byte) (*Descriptor, error) {
	doc := make(map[string]interface{})
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", config.DescriptorName, err)
	}
	var view typedView
	if err := toml.Unmarshal(data, &view); err != nil {
		return nil, fmt.Errorf("parsing [project] of %s: %w", config.DescriptorName, err)
	}
	return &Descriptor{doc: doc, Project: view.Project}, nil
}

// Lookup returns the value at the dotted key path, e.g. Lookup("tool", "setuptools").
func (d *Descriptor) Lookup(keys ...string) (interface{}, bool) {
	var cur interface{} = d.doc
	for _, k := range keys {
		table, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		if cur, ok = table[k]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// Encode renders the descriptor as TOML. Key order follows the encoder, and
// comments of the original file are not kept.
func (d *Descriptor) Encode() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := toml.NewEncoder(buf).Encode(d.doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes d and replaces pyproject.toml in dirPath.
func Write(dirPath string, d *Descriptor) error {
	data, err := d.Encode()
	if err != nil {
		return fmt.Errorf("encoding %s: %w", config.DescriptorName, err)
	}

	fullPath := filepath.Join(dirPath, config.DescriptorName)
	perm := os.FileMode(0644)
	if info, err := os.Stat(fullPath); err == nil {
		perm = info.Mode().Perm()
	}
	return fsutil.WriteFileAtomic(fullPath, data, perm)
}
