package descriptor_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nightconcept/pyinit-go/internal/core/descriptor"
)

const templateToml = `
[build-system]
requires = ["setuptools>=61.0"]
build-backend = "setuptools.build_meta"

[project]
name = "project_name"
description = ""
python = ""
authors = [{ name = "", email = "" }]
dependencies = []
dynamic = ["version"]

[project.optional-dependencies]
dev = []
doc = []
test = []

[tool.setuptools.dynamic]
version = { attr = "project_name.__version__" }
`

func writeTemplate(t *testing.T, content string) string {
	t.Helper()
	tempDir := t.TempDir()
	err := os.WriteFile(filepath.Join(tempDir, "pyproject.toml"), []byte(content), 0644)
	require.NoError(t, err)
	return tempDir
}

func TestLoad_Valid(t *testing.T) {
	t.Parallel()
	tempDir := writeTemplate(t, templateToml)

	d, err := descriptor.Load(tempDir)
	require.NoError(t, err)
	require.NotNil(t, d)

	assert.Equal(t, "project_name", d.Project.Name)
	assert.Equal(t, []descriptor.Author{{}}, d.Project.Authors)
	assert.Empty(t, d.Project.Dependencies)
	assert.Contains(t, d.Project.OptionalDependencies, "dev")

	backend, ok := d.Lookup("build-system", "build-backend")
	require.True(t, ok)
	assert.Equal(t, "setuptools.build_meta", backend)

	_, ok = d.Lookup("tool", "poetry")
	assert.False(t, ok)
	_, ok = d.Lookup("project", "name", "deeper")
	assert.False(t, ok)
}

func TestLoad_NotFound(t *testing.T) {
	t.Parallel()
	_, err := descriptor.Load(t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, descriptor.ErrDescriptorNotFound)
	assert.True(t, errors.Is(err, os.ErrNotExist), "Error should still be a 'file not found' type error")
}

func TestLoad_InvalidFormat(t *testing.T) {
	t.Parallel()
	tempDir := writeTemplate(t, "[project\nname = \"x\"\n")

	_, err := descriptor.Load(tempDir)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, descriptor.ErrDescriptorNotFound)
}

func fullMetadata() descriptor.Metadata {
	return descriptor.Metadata{
		Author:       descriptor.Author{Name: "Ada", Email: "a@x.com"},
		Name:         "acme",
		Description:  "demo",
		Python:       ">=3.10",
		Dependencies: []string{`"requests >=2.0"`},
		Dev:          []string{`"black >=24"`, `"ruff <1"`},
	}
}

func TestApply_WritesFieldsAndKeepsInput(t *testing.T) {
	t.Parallel()
	in, err := descriptor.Parse([]byte(templateToml))
	require.NoError(t, err)

	out, err := descriptor.Apply(in, fullMetadata())
	require.NoError(t, err)

	assert.Equal(t, "acme", out.Project.Name)
	assert.Equal(t, []descriptor.Author{{Name: "Ada", Email: "a@x.com"}}, out.Project.Authors)
	assert.Equal(t, []string{`"requests >=2.0"`}, out.Project.Dependencies)
	assert.Equal(t, []string{`"black >=24"`, `"ruff <1"`}, out.Project.OptionalDependencies["dev"])
	assert.Equal(t, []string{}, out.Project.OptionalDependencies["test"])

	// The input is untouched, including its generic document.
	assert.Equal(t, "project_name", in.Project.Name)
	name, _ := in.Lookup("project", "name")
	assert.Equal(t, "project_name", name)
	dev, _ := in.Lookup("project", "optional-dependencies", "dev")
	assert.Empty(t, dev)
}

func TestApply_RoundTripPreservesOtherSections(t *testing.T) {
	t.Parallel()
	in, err := descriptor.Parse([]byte(templateToml))
	require.NoError(t, err)
	out, err := descriptor.Apply(in, fullMetadata())
	require.NoError(t, err)

	data, err := out.Encode()
	require.NoError(t, err)

	var raw map[string]interface{}
	_, err = toml.Decode(string(data), &raw)
	require.NoError(t, err)

	buildSystem := raw["build-system"].(map[string]interface{})
	assert.Equal(t, "setuptools.build_meta", buildSystem["build-backend"])
	project := raw["project"].(map[string]interface{})
	assert.Equal(t, []interface{}{"version"}, project["dynamic"])
	assert.Equal(t, []interface{}{`"requests >=2.0"`}, project["dependencies"])
	attr := raw["tool"].(map[string]interface{})["setuptools"].(map[string]interface{})["dynamic"].(map[string]interface{})["version"].(map[string]interface{})["attr"]
	assert.Equal(t, "project_name.__version__", attr)
	assert.Contains(t, string(data), `"\"requests >=2.0\""`)
}

func TestApply_MissingTables(t *testing.T) {
	t.Parallel()
	noProject, err := descriptor.Parse([]byte("[tool.x]\ny = 1\n"))
	require.NoError(t, err)
	_, err = descriptor.Apply(noProject, fullMetadata())
	assert.ErrorIs(t, err, descriptor.ErrTemplateIntegrity)

	noOptional, err := descriptor.Parse([]byte("[project]\nname = \"x\"\n"))
	require.NoError(t, err)
	_, err = descriptor.Apply(noOptional, fullMetadata())
	assert.ErrorIs(t, err, descriptor.ErrTemplateIntegrity)
	assert.Contains(t, err.Error(), "optional-dependencies")
}

func TestWrite_OverwriteFile(t *testing.T) {
	t.Parallel()
	tempDir := writeTemplate(t, templateToml)
	in, err := descriptor.Load(tempDir)
	require.NoError(t, err)
	out, err := descriptor.Apply(in, descriptor.Metadata{
		Author: descriptor.Author{Name: "Ada", Email: "a@x.com"},
		Name:   "acme",
		Python: ">=3.10",
	})
	require.NoError(t, err)

	require.NoError(t, descriptor.Write(tempDir, out))

	loaded, err := descriptor.Load(tempDir)
	require.NoError(t, err)
	assert.Equal(t, "acme", loaded.Project.Name)
	assert.Equal(t, ">=3.10", loaded.Project.Python)
	assert.Equal(t, []descriptor.Author{{Name: "Ada", Email: "a@x.com"}}, loaded.Project.Authors)
	assert.Empty(t, loaded.Project.Dependencies)
	for _, group := range []string{"dev", "doc", "test"} {
		require.Contains(t, loaded.Project.OptionalDependencies, group)
		assert.Empty(t, loaded.Project.OptionalDependencies[group], group)
	}

	content, err := os.ReadFile(filepath.Join(tempDir, "pyproject.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "dependencies = []")
}
