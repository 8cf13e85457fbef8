package importer

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Resolver answers the interactive questions that come up while
// importing: picking a fuzzy match, confirming a creation, entering a
// conversion factor. Tests script it, the CLI backs it with stdin.
type Resolver interface {
	// Confirm asks a yes/no question.
	Confirm(prompt string) (bool, error)
	// Select presents numbered options and returns the chosen index,
	// or -1 when the user picks none of them.
	Select(prompt string, options []string) (int, error)
	// Input reads a free-form line.
	Input(prompt string) (string, error)
	// InputNumber reads a number, reprompting on garbage.
	InputNumber(prompt string) (float64, error)
}

// TerminalResolver implements Resolver over a terminal.
type TerminalResolver struct {
	in  *bufio.Reader
	out io.Writer
}

func NewTerminalResolver(in io.Reader, out io.Writer) *TerminalResolver {
	return &TerminalResolver{in: bufio.NewReader(in), out: out}
}

func (r *TerminalResolver) readLine() (string, error) {
	line, err := r.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (r *TerminalResolver) Confirm(prompt string) (bool, error) {
	fmt.Fprintf(r.out, "%s [y/N]: ", prompt)
	line, err := r.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func (r *TerminalResolver) Select(prompt string, options []string) (int, error) {
	fmt.Fprintln(r.out, prompt)
	for i, opt := range options {
		fmt.Fprintf(r.out, "  %d. %s\n", i+1, opt)
	}
	fmt.Fprintf(r.out, "choice (0 for none): ")

	for {
		line, err := r.readLine()
		if err != nil {
			return -1, err
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < 0 || n > len(options) {
			fmt.Fprintf(r.out, "enter a number between 0 and %d: ", len(options))
			continue
		}
		return n - 1, nil
	}
}

func (r *TerminalResolver) Input(prompt string) (string, error) {
	fmt.Fprintf(r.out, "%s: ", prompt)
	return r.readLine()
}

func (r *TerminalResolver) InputNumber(prompt string) (float64, error) {
	for {
		line, err := r.Input(prompt)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			fmt.Fprintln(r.out, "not a number, try again")
			continue
		}
		return v, nil
	}
}
