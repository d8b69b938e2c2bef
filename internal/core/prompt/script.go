package prompt

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// InterruptAnswer in a script stands for the user pressing Ctrl+C at that prompt.
const InterruptAnswer = "^C"

// ScriptFile is the YAML layout accepted by LoadScript:
//
//	answers:
//	  - Ada Lovelace
//	  - ada@example.com
//	  - "^C"
type ScriptFile struct {
	Answers []string `yaml:"answers"`
}

// Script replays a fixed sequence of answers and records every question asked.
type Script struct {
	answers   []string
	next      int
	out       io.Writer
	Questions []string
}

// NewScript returns a Script that answers with answers, in order. Output from
// Say and the questions themselves go to out when it is non-nil.
func NewScript(out io.Writer, answers ...string) *Script {
	return &Script{answers: answers, out: out}
}

// LoadScript reads a ScriptFile from path.
func LoadScript(path string, out io.Writer) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading answers file %s: %w", path, err)
	}
	var sf ScriptFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parsing answers file %s: %w", path, err)
	}
	return NewScript(out, sf.Answers...), nil
}

// Ask returns the next scripted answer.
func (s *Script) Ask(question string) (string, error) {
	s.Questions = append(s.Questions, question)
	if s.out != nil {
		_, _ = fmt.Fprint(s.out, question)
	}
	if s.next >= len(s.answers) {
		if s.out != nil {
			_, _ = fmt.Fprintln(s.out)
		}
		return "", ErrInputClosed
	}
	answer := s.answers[s.next]
	s.next++
	if s.out != nil {
		_, _ = fmt.Fprintln(s.out, answer)
	}
	if answer == InterruptAnswer {
		return "", ErrInterrupted
	}
	return answer, nil
}

// Say prints an informational line.
func (s *Script) Say(format string, args ...any) {
	if s.out != nil {
		_, _ = fmt.Fprintf(s.out, format+"\n", args...)
	}
}

// Remaining reports how many answers have not been consumed.
func (s *Script) Remaining() int {
	return len(s.answers) - s.next
}
