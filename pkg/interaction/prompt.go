// Package interaction reads operator input from the terminal. Prompt text is
// written to the prompter's output (stdout by default) so it never mixes with
// structured logs on stderr.
package interaction

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"
)

// Prompter reads operator answers. In and Out are swappable for tests.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer

	// stdinFd is >= 0 when the underlying input is the process stdin,
	// enabling hidden password input on a real terminal.
	stdinFd int
}

// NewPrompter returns a Prompter bound to the process stdin/stdout.
func NewPrompter() *Prompter {
	return &Prompter{
		in:      bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		stdinFd: int(os.Stdin.Fd()),
	}
}

// NewPrompterWith returns a Prompter over arbitrary streams, for tests.
func NewPrompterWith(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out, stdinFd: -1}
}

// ReadLine prints the label and returns one trimmed line of input.
func (p *Prompter) ReadLine(label string) (string, error) {
	fmt.Fprint(p.out, label)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// PromptWithDefault asks for a value, returning def on empty input.
func (p *Prompter) PromptWithDefault(label, def string) (string, error) {
	input, err := p.ReadLine(fmt.Sprintf("%s [%s]: ", label, def))
	if err != nil {
		return "", err
	}
	if input == "" {
		return def, nil
	}
	return input, nil
}

// PromptRequired keeps asking until a non-empty value is entered.
func (p *Prompter) PromptRequired(label string) (string, error) {
	for {
		input, err := p.ReadLine(label + ": ")
		if err != nil {
			return "", err
		}
		if input != "" {
			return input, nil
		}
		fmt.Fprintln(p.out, "Input cannot be empty.")
	}
}

// PromptSecret asks for a value without echoing when running on a real
// terminal. Off-terminal (tests, piped input) it falls back to a plain line.
func (p *Prompter) PromptSecret(label string) (string, error) {
	if p.stdinFd >= 0 && term.IsTerminal(p.stdinFd) {
		fmt.Fprint(p.out, label+": ")
		raw, err := term.ReadPassword(p.stdinFd)
		fmt.Fprintln(p.out)
		if err != nil {
			return "", fmt.Errorf("failed to read secret: %w", err)
		}
		return strings.TrimSpace(string(raw)), nil
	}
	return p.ReadLine(label + ": ")
}

// PromptYesNo asks a yes/no question, falling back to the default on
// unrecognized input.
func (p *Prompter) PromptYesNo(label string, defaultYes bool) bool {
	hint := "y/N"
	if defaultYes {
		hint = "Y/n"
	}
	input, err := p.ReadLine(fmt.Sprintf("%s [%s]: ", label, hint))
	if err != nil {
		zap.L().Warn("Failed to read yes/no input", zap.Error(err))
		return defaultYes
	}
	switch strings.ToLower(input) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	case "":
		return defaultYes
	default:
		return defaultYes
	}
}
