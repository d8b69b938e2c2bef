// Command pyinit turns a freshly cloned Python project template into a named
// project: it asks for author and project details, rewrites pyproject.toml and
// LICENSE, and replaces the project_name placeholder across the tree.
package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/nightconcept/pyinit-go/internal/cli/initcmd"
)

// The main function, where the program execution begins.
func main() {
	app := &cli.App{
		Name:                      "pyinit",
		Usage:                     "Initialize a Python project from the template in the current directory",
		Version:                   "v0.1.0",
		Flags:                     initcmd.Flags(),
		Action:                    initcmd.Action,
		DisableSliceFlagSeparator: true, // exclude globs may contain commas, e.g. "{dist,build}"
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
