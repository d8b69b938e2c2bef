package descriptor

import (
	"fmt"
)

// Optional dependency groups under project.optional-dependencies.
const (
	GroupDev  = "dev"
	GroupDoc  = "doc"
	GroupTest = "test"
)

// Metadata is everything the initializer writes into the descriptor.
// Requirement slices hold already formatted entries.
type Metadata struct {
	Author       Author
	Name         string
	Description  string
	Python       string
	Dependencies []string
	Dev          []string
	Doc          []string
	Test         []string
}

// Apply returns a copy of in with m written into the [project] table.
// in is never modified. The template must already contain [project] and
// [project.optional-dependencies].
func Apply(in *Descriptor, m Metadata) (*Descriptor, error) {
	doc := copyTable(in.doc)

	project, ok := doc["project"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: missing [project] table", ErrTemplateIntegrity)
	}
	optional, ok := project["optional-dependencies"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: missing [project.optional-dependencies] table", ErrTemplateIntegrity)
	}

	project["authors"] = []map[string]interface{}{
		{"name": m.Author.Name, "email": m.Author.Email},
	}
	project["name"] = m.Name
	project["description"] = m.Description
	project["python"] = m.Python
	project["dependencies"] = nonNil(m.Dependencies)
	optional[GroupDev] = nonNil(m.Dev)
	optional[GroupDoc] = nonNil(m.Doc)
	optional[GroupTest] = nonNil(m.Test)

	out := &Descriptor{doc: doc, Project: in.Project}
	out.Project.Authors = []Author{m.Author}
	out.Project.Name = m.Name
	out.Project.Description = m.Description
	out.Project.Python = m.Python
	out.Project.Dependencies = nonNil(m.Dependencies)
	groups := make(map[string][]string, len(in.Project.OptionalDependencies)+3)
	for k, v := range in.Project.OptionalDependencies {
		groups[k] = v
	}
	groups[GroupDev] = nonNil(m.Dev)
	groups[GroupDoc] = nonNil(m.Doc)
	groups[GroupTest] = nonNil(m.Test)
	out.Project.OptionalDependencies = groups
	return out, nil
}

// nonNil copies reqs so that an empty list is encoded as [] instead of being dropped.
func nonNil(reqs []string) []string {
	return append(make([]string, 0, len(reqs)), reqs...)
}

func copyTable(t map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(t))
	for k, v := range t {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v interface{}) interface{} {
	switch v := v.(type) {
	case map[string]interface{}:
		return copyTable(v)
	case []map[string]interface{}:
		out := make([]map[string]interface{}, len(v))
		for i, t := range v {
			out[i] = copyTable(t)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, e := range v {
			out[i] = copyValue(e)
		}
		return out
	default:
		return v
	}
}
