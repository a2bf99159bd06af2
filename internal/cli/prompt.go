package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Terminal asks questions on Out and reads the answers from In, one line each.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

// readLine returns the next line without its terminator. ok is false on EOF
// with nothing read.
func (t *Terminal) readLine() (string, bool) {
	line, err := t.in.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimRight(line, "\r\n"), true
}

// Confirm asks a y/N question. Anything but an explicit yes declines.
func (t *Terminal) Confirm(question string) bool {
	fmt.Fprint(t.out, FormatPrompt(question+" (y/N): "))
	answer, ok := t.readLine()
	if !ok {
		fmt.Fprintln(t.out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes", "s", "sim":
		return true
	default:
		return false
	}
}

// Prompt asks for a value pre-filled with current. An empty answer keeps
// current; end of input cancels.
func (t *Terminal) Prompt(question, current string) (string, bool) {
	fmt.Fprint(t.out, FormatPrompt(question)+" "+SubtleStyle.Render("["+current+"]")+" ")
	answer, ok := t.readLine()
	if !ok {
		fmt.Fprintln(t.out)
		return "", false
	}
	if answer == "" {
		return current, true
	}
	return answer, true
}

// Ask reads a free-form answer, used to collect draft fields. ok is false
// at end of input.
func (t *Terminal) Ask(question string) (string, bool) {
	fmt.Fprint(t.out, FormatPrompt(question)+" ")
	return t.readLine()
}
