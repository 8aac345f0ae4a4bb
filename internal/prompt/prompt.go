// Package prompt reads interactive answers from a terminal. Callers must not
// prompt when stdin is not a TTY; Terminal exposes the check so the CLI can
// fall back to non-interactive behavior in pipelines.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Terminal prompts on out and reads line-based answers from in.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

// New returns a Terminal over the given streams.
func New(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

// Stdin returns a Terminal over the process streams.
func Stdin() *Terminal {
	return New(os.Stdin, os.Stderr)
}

// IsInteractive reports whether stdin is attached to a terminal.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Ask prints the prompt and returns the trimmed answer line.
func (t *Terminal) Ask(prompt string) (string, error) {
	fmt.Fprint(t.out, prompt)
	line, err := t.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Confirm asks a yes/no question. Only an explicit yes answer counts.
func (t *Terminal) Confirm(prompt string) (bool, error) {
	answer, err := t.Ask(prompt + " (y/n): ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
