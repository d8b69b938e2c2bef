package initcmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Masterminds/semver/v3"
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/nightconcept/pyinit-go/internal/core/collector"
	"github.com/nightconcept/pyinit-go/internal/core/config"
	"github.com/nightconcept/pyinit-go/internal/core/descriptor"
	"github.com/nightconcept/pyinit-go/internal/core/license"
	"github.com/nightconcept/pyinit-go/internal/core/prompt"
	"github.com/nightconcept/pyinit-go/internal/core/renamer"
)

// Flags returns the flags of the initializer. With none given it runs in the
// current directory and asks for confirmation, like the bare script.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "dir",
			Aliases: []string{"C"},
			Usage:   "Run in `DIR` instead of the current directory",
			Value:   ".",
		},
		&cli.BoolFlag{
			Name:  "no-validate",
			Usage: "Do not ask to confirm the collected answers",
		},
		&cli.StringSliceFlag{
			Name:  "exclude",
			Usage: "Extra `GLOB` to leave out of the rename pass (repeatable)",
		},
		&cli.StringFlag{
			Name:  "answers",
			Usage: "Replay answers from a YAML `FILE` instead of the terminal",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Enable verbose output",
		},
	}
}

// OptionsFromContext builds run options from parsed flags.
func OptionsFromContext(c *cli.Context) config.Options {
	opts := config.DefaultOptions()
	opts.Dir = c.String("dir")
	opts.Validate = !c.Bool("no-validate")
	opts.Excludes = c.StringSlice("exclude")
	opts.AnswersPath = c.String("answers")
	opts.Verbose = c.Bool("verbose")
	return opts
}

// Action is the cli.ActionFunc of the initializer.
func Action(c *cli.Context) error {
	opts := OptionsFromContext(c)
	out := c.App.Writer
	if out == nil {
		out = os.Stdout
	}

	if opts.AnswersPath != "" {
		script, err := prompt.LoadScript(opts.AnswersPath, out)
		if err != nil {
			return cli.Exit(color.RedString("Error: %v", err), 1)
		}
		err = Run(opts, script, out)
		if err == nil && script.Remaining() > 0 {
			_, _ = fmt.Fprintln(out, color.YellowString("Warning: %d unused answers in %s", script.Remaining(), opts.AnswersPath))
		}
		return exitError(err, out)
	}

	// Run releases the console once collection is over; Close covers early returns.
	console := prompt.NewConsole(os.Stdin, out)
	defer console.Close()
	return exitError(Run(opts, console, out), out)
}

// pythonVersionNote returns a note when v does not parse as a semver-style
// range. The check is advisory only: PEP 440 forms such as "~=3.12" are valid
// for pip yet get the note, and the value is always written as given.
func pythonVersionNote(v string) (string, bool) {
	if _, err := semver.NewConstraint(v); err == nil {
		return "", false
	}
	return fmt.Sprintf("Note: python version %q is not a semver-style range; writing it as given.", v), true
}

// exitError maps a Run error to the process exit status.
func exitError(err error, out io.Writer) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, prompt.ErrInterrupted):
		// The prompter has already ended the interrupted line.
		_, _ = fmt.Fprintln(out, "Exiting.")
		return nil
	case errors.Is(err, descriptor.ErrDescriptorNotFound):
		return cli.Exit(fmt.Sprintf("No %s found, exiting.", config.DescriptorName), 1)
	default:
		return cli.Exit(color.RedString("Error: %v", err), 1)
	}
}

// Run performs the whole initialization against opts.Dir. Nothing on disk is
// touched until every question has been answered. A failure after that point
// leaves the tree as far as it got.
func Run(opts config.Options, p prompt.Prompter, out io.Writer) error {
	if opts.Now == nil {
		opts.Now = config.DefaultOptions().Now
	}
	step := color.New(color.FgCyan, color.Bold).SprintFunc()
	warn := color.New(color.FgYellow).SprintFunc()
	success := color.New(color.FgGreen, color.Bold).SprintFunc()

	in, err := descriptor.Load(opts.Dir)
	if err != nil {
		return err
	}
	if opts.Verbose {
		_, _ = fmt.Fprintf(out, "Loaded %s (project: %q)\n", opts.DescriptorPath(), in.Project.Name)
		if backend, ok := in.Lookup("build-system", "build-backend"); ok {
			_, _ = fmt.Fprintf(out, "Build backend: %v\n", backend)
		}
	}

	_, _ = fmt.Fprintln(out, "Hi! Let's get started.")
	_, _ = fmt.Fprintln(out, "Please answer the following questions to help us get you set up.")
	answers, err := collector.CollectAnswers(p, opts.Validate)
	if err != nil {
		return err
	}
	if note, ok := pythonVersionNote(answers.PythonVersion); ok {
		_, _ = fmt.Fprintln(out, warn(note))
	}

	deps := make(map[collector.Scope]*collector.Dependencies, len(collector.Scopes))
	for _, scope := range collector.Scopes {
		d, err := collector.CollectDependencies(p, scope)
		if err != nil {
			return err
		}
		deps[scope] = d
		if opts.Verbose {
			_, _ = fmt.Fprintf(out, "Collected %d %s dependencies\n", d.Len(), scope)
		}
	}
	prompt.Release(p)

	updated, err := descriptor.Apply(in, descriptor.Metadata{
		Author:       descriptor.Author{Name: answers.Name, Email: answers.Email},
		Name:         answers.ProjectName,
		Description:  answers.Description,
		Python:       answers.PythonVersion,
		Dependencies: deps[collector.Runtime].Requirements(),
		Dev:          deps[collector.Development].Requirements(),
		Doc:          deps[collector.Documentation].Requirements(),
		Test:         deps[collector.Testing].Requirements(),
	})
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(out, step("Updating license..."))
	if err := license.Update(opts.Dir, answers.Name, opts.Now()); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(out, step("Generating pyproject.toml..."))
	if err := descriptor.Write(opts.Dir, updated); err != nil {
		return fmt.Errorf("writing %s: %w", config.DescriptorName, err)
	}

	_, _ = fmt.Fprintln(out, step("Renaming project..."))
	files, err := renamer.Enumerate(opts.Dir, opts.AllExcludes())
	if err != nil {
		return err
	}
	res, err := renamer.Replace(opts.Dir, files, answers.ProjectName)
	if err != nil {
		return err
	}
	if opts.Verbose {
		for _, f := range res.Rewritten {
			_, _ = fmt.Fprintf(out, "  rewrote %s\n", f)
		}
		for _, f := range res.Binary {
			_, _ = fmt.Fprintf(out, "  skipped binary %s\n", f)
		}
	}
	if err := renamer.RenamePackage(opts.PackageDir(), answers.ProjectName); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Rewrote %d of %d files (%d without the placeholder, %d binary), moved %s/%s to %s/%s.\n",
		len(res.Rewritten), len(files), res.Unchanged, len(res.Binary),
		config.SourceDir, config.PlaceholderToken, config.SourceDir, answers.ProjectName)

	_, _ = fmt.Fprintln(out, success("Your project is ready!"))
	return nil
}
