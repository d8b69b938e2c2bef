package collector

import (
	"errors"
	"fmt"

	"github.com/nightconcept/pyinit-go/internal/core/prompt"
)

// Scope is one of the four dependency categories.
type Scope string

const (
	Runtime       Scope = "runtime"
	Development   Scope = "development"
	Documentation Scope = "documentation"
	Testing       Scope = "testing"
)

// Scopes lists every scope in the order they are asked.
var Scopes = []Scope{Runtime, Development, Documentation, Testing}

// Dependencies maps dependency names to version strings, remembering the order
// in which names were first added.
type Dependencies struct {
	names    []string
	versions map[string]string
}

// NewDependencies returns an empty set.
func NewDependencies() *Dependencies {
	return &Dependencies{versions: make(map[string]string)}
}

// Set adds name or overwrites its version in place.
func (d *Dependencies) Set(name, version string) {
	if _, ok := d.versions[name]; !ok {
		d.names = append(d.names, name)
	}
	d.versions[name] = version
}

// Get returns the version recorded for name.
func (d *Dependencies) Get(name string) (string, bool) {
	v, ok := d.versions[name]
	return v, ok
}

// Len returns the number of distinct names.
func (d *Dependencies) Len() int {
	if d == nil {
		return 0
	}
	return len(d.names)
}

// Names returns the names in insertion order.
func (d *Dependencies) Names() []string {
	if d == nil {
		return nil
	}
	return append([]string(nil), d.names...)
}

// Requirements renders every entry as a quoted "name version" string, in
// insertion order. The result is never nil.
func (d *Dependencies) Requirements() []string {
	reqs := make([]string, 0, d.Len())
	for _, name := range d.Names() {
		reqs = append(reqs, fmt.Sprintf(`"%s %s"`, name, d.versions[name]))
	}
	return reqs
}

// CollectDependencies asks whether the user wants dependencies for scope and,
// if so, collects name/version pairs until they decline to add another.
//
// An interrupt while entering dependencies throws away everything collected
// for this scope and returns an empty set with a nil error. An interrupt at
// the opening question is returned to the caller.
func CollectDependencies(p prompt.Prompter, scope Scope) (*Dependencies, error) {
	deps := NewDependencies()

	answer, err := p.Ask(fmt.Sprintf("Add %s dependencies? (y/n) ", scope))
	if err != nil {
		return nil, err
	}
	if prompt.IsYes(answer) {
		if err := collectEntries(p, deps); err != nil {
			if !errors.Is(err, prompt.ErrInterrupted) {
				return nil, err
			}
			deps = NewDependencies()
		}
	}

	p.Say("Understood, let's move on.")
	return deps, nil
}

func collectEntries(p prompt.Prompter, deps *Dependencies) error {
	p.Say("Please enter the dependencies you want to add.")
	p.Say("Press Ctrl+C to leave empty and move on.")
	for {
		name, err := askRequired(p, "Add a dependency (e.g. requests): ", "a dependency")
		if err != nil {
			return err
		}
		// The advertised empty default never satisfies the required check.
		version, err := askRequired(p, fmt.Sprintf("Version of %s (default: empty): ", name), "a version")
		if err != nil {
			return err
		}
		if previous, ok := deps.Get(name); ok {
			p.Say("Replacing %s %s.", name, previous)
		}
		deps.Set(name, version)
		p.Say("Added!")

		another, err := p.Ask("Add another dependency? (y/n) ")
		if err != nil {
			return err
		}
		if !prompt.IsYes(another) {
			return nil
		}
	}
}
