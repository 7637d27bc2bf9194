package shell

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Prompter collects user choices and input. The interactive workflows only
// talk to this interface, so they can be driven by scripted answers in
// tests.
type Prompter interface {
	// Select presents a single-choice menu and returns the chosen index.
	Select(message string, choices []string) (int, error)

	// MultiSelect presents a checkbox menu with the given indices
	// pre-checked and returns the chosen indices.
	MultiSelect(message string, choices []string, checked []int) ([]int, error)

	// Input asks for one line of free text.
	Input(message string) (string, error)
}

// TerminalPrompter reads answers from an input stream, one line per prompt.
type TerminalPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminalPrompter prompts on stdin/stdout.
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{in: bufio.NewReader(os.Stdin), out: os.Stdout}
}

// Select shows a numbered menu and reads a 1-based choice. Invalid input
// reprompts.
func (p *TerminalPrompter) Select(message string, choices []string) (int, error) {
	fmt.Fprintf(p.out, "\n%s\n", message)
	for i, choice := range choices {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, choice)
	}

	for {
		fmt.Fprintf(p.out, "> ")
		line, err := p.readLine()
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err == nil && n >= 1 && n <= len(choices) {
			return n - 1, nil
		}
		fmt.Fprintf(p.out, "Please enter a number between 1 and %d\n", len(choices))
	}
}

// MultiSelect shows a checkbox menu. An empty answer accepts the pre-checked
// defaults, "none" clears the selection, otherwise comma-separated 1-based
// numbers pick entries.
func (p *TerminalPrompter) MultiSelect(message string, choices []string, checked []int) ([]int, error) {
	isChecked := make(map[int]bool, len(checked))
	for _, i := range checked {
		isChecked[i] = true
	}

	fmt.Fprintf(p.out, "\n%s\n", message)
	for i, choice := range choices {
		mark := " "
		if isChecked[i] {
			mark = "x"
		}
		fmt.Fprintf(p.out, "  [%s] %d) %s\n", mark, i+1, choice)
	}
	fmt.Fprintln(p.out, "Enter numbers separated by commas, press Enter for the checked defaults, or type 'none'")

	for {
		fmt.Fprintf(p.out, "> ")
		line, err := p.readLine()
		if err != nil {
			return nil, err
		}
		if line == "" {
			return checked, nil
		}
		if strings.EqualFold(line, "none") {
			return nil, nil
		}

		selected, ok := parseSelection(line, len(choices))
		if ok {
			return selected, nil
		}
		fmt.Fprintf(p.out, "Please enter numbers between 1 and %d, separated by commas\n", len(choices))
	}
}

// Input reads one trimmed line.
func (p *TerminalPrompter) Input(message string) (string, error) {
	fmt.Fprintf(p.out, "%s ", message)
	return p.readLine()
}

func (p *TerminalPrompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// parseSelection parses comma-separated 1-based numbers into 0-based
// indices, rejecting anything out of range. Repeated numbers count once,
// keeping their first position.
func parseSelection(line string, count int) ([]int, bool) {
	var selected []int
	seen := make(map[int]bool)
	for _, part := range strings.Split(line, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 1 || n > count {
			return nil, false
		}
		if seen[n] {
			continue
		}
		seen[n] = true
		selected = append(selected, n-1)
	}
	return selected, true
}
