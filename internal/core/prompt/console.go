package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
)

type line struct {
	text string
	err  error
}

// Console prompts on a terminal. A background reader owns the input so that a
// pending read can lose the race to an interrupt; the next Ask then receives
// the next line typed.
type Console struct {
	out   io.Writer
	lines chan line
	sigs  chan os.Signal
	ask   func(a ...interface{}) string
}

// NewConsole starts reading lines from in and listening for interrupts.
// Call Close to stop listening.
func NewConsole(in io.Reader, out io.Writer) *Console {
	c := &Console{
		out:   out,
		lines: make(chan line),
		sigs:  make(chan os.Signal, 1),
		ask:   color.New(color.FgCyan, color.Bold).SprintFunc(),
	}
	signal.Notify(c.sigs, os.Interrupt)
	go c.read(in)
	return c
}

func (c *Console) read(in io.Reader) {
	reader := bufio.NewReader(in)
	for {
		text, err := reader.ReadString('\n')
		if err != nil {
			if text != "" {
				c.lines <- line{text: text}
			}
			if err == io.EOF {
				err = ErrInputClosed
			}
			c.lines <- line{err: err}
			close(c.lines)
			return
		}
		c.lines <- line{text: text}
	}
}

// Ask prints question and waits for either a line of input or an interrupt.
func (c *Console) Ask(question string) (string, error) {
	// Drop an interrupt that arrived while no prompt was pending.
	select {
	case <-c.sigs:
	default:
	}

	_, _ = fmt.Fprint(c.out, c.ask(question))

	select {
	case l, ok := <-c.lines:
		if !ok {
			return "", ErrInputClosed
		}
		if l.err != nil {
			_, _ = fmt.Fprintln(c.out)
			return "", fmt.Errorf("reading answer to %q: %w", strings.TrimSpace(question), l.err)
		}
		return strings.TrimRight(l.text, "\r\n"), nil
	case <-c.sigs:
		_, _ = fmt.Fprintln(c.out)
		return "", ErrInterrupted
	}
}

// Say prints an informational line.
func (c *Console) Say(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format+"\n", args...)
}

// Close stops interrupt delivery to the console, restoring the default
// Ctrl+C behaviour of terminating the process. It is safe to call twice.
func (c *Console) Close() {
	signal.Stop(c.sigs)
}
