// Package prompt models terminal questions as a request/response exchange so
// the collection logic can run against a real terminal or a scripted replay.
package prompt

import (
	"errors"
	"strings"
)

// ErrInterrupted is returned when the user interrupts a prompt (Ctrl+C).
var ErrInterrupted = errors.New("interrupted")

// ErrInputClosed is returned when no more answers can be read.
var ErrInputClosed = errors.New("input closed")

// Prompter asks a single question and returns the answer line without its
// trailing newline.
type Prompter interface {
	Ask(question string) (string, error)
	Say(format string, args ...any)
}

// IsYes reports whether an answer to a (y/n) question means yes.
// Besides "y" it accepts "yes", in any case and with surrounding whitespace,
// which a bare comparison against "y" would count as a no.
func IsYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

// Release tells p that no more questions will be asked. A Console stops
// catching interrupts, so Ctrl+C during the rewrite steps terminates the process.
func Release(p Prompter) {
	if c, ok := p.(interface{ Close() }); ok {
		c.Close()
	}
}
