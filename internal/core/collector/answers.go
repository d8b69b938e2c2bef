// Package collector asks the initialization questions over a prompt.Prompter.
package collector

import (
	"fmt"

	"github.com/nightconcept/pyinit-go/internal/core/config"
	"github.com/nightconcept/pyinit-go/internal/core/prompt"
)

// Answers is the author and project metadata collected before dependencies.
type Answers struct {
	Name          string
	Email         string
	ProjectName   string
	Description   string
	PythonVersion string
}

// CollectAnswers asks for the five metadata values. When validate is set the
// values are echoed back and a rejection starts over from the first question.
// Any prompt error, including prompt.ErrInterrupted, is returned unchanged.
func CollectAnswers(p prompt.Prompter, validate bool) (Answers, error) {
	for {
		a, err := askAnswers(p)
		if err != nil {
			return Answers{}, err
		}
		if !validate {
			return a, nil
		}

		p.Say("So far, we have:")
		p.Say(" - Author: %s <%s>", a.Name, a.Email)
		p.Say(" - Project name: %s", a.ProjectName)
		p.Say(" - Project description: %s", a.Description)
		p.Say(" - Python version: %s", a.PythonVersion)
		ok, err := p.Ask("Is this correct? (y/n) ")
		if err != nil {
			return Answers{}, err
		}
		if prompt.IsYes(ok) {
			return a, nil
		}
		p.Say("Understood, let's try again.")
	}
}

func askAnswers(p prompt.Prompter) (Answers, error) {
	var a Answers
	var err error

	if a.Name, err = askRequired(p, "What is your name? ", "your name"); err != nil {
		return a, err
	}
	if a.Email, err = askRequired(p, "What is your email address? ", "your email address"); err != nil {
		return a, err
	}
	if a.ProjectName, err = askRequired(p, "What should we call your project? ", "a project name"); err != nil {
		return a, err
	}
	if a.Description, err = askRequired(p, "What is your project about? ", "a project description"); err != nil {
		return a, err
	}

	a.PythonVersion, err = p.Ask(fmt.Sprintf("What version of Python do you want to use? (default: %s) ", config.DefaultPythonVersion))
	if err != nil {
		return a, err
	}
	if a.PythonVersion == "" {
		a.PythonVersion = config.DefaultPythonVersion
	}
	return a, nil
}

// askRequired repeats question until a non-empty answer is given.
func askRequired(p prompt.Prompter, question, what string) (string, error) {
	for {
		answer, err := p.Ask(question)
		if err != nil {
			return "", err
		}
		if answer != "" {
			return answer, nil
		}
		p.Say("Please enter %s, or press Ctrl+C to exit.", what)
	}
}
