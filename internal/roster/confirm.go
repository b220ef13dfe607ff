package roster

import (
	"fmt"
	"io"
	"strings"
)

// Confirmer is a blocking yes/no gate.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmerFunc adapts a function to the Confirmer interface.
type ConfirmerFunc func(prompt string) bool

// Confirm calls f(prompt).
func (f ConfirmerFunc) Confirm(prompt string) bool {
	return f(prompt)
}

// AssumeYes confirms everything without asking. Used for --yes.
var AssumeYes = ConfirmerFunc(func(string) bool { return true })

// LineReader is the input side of a terminal confirmer. *bufio.Reader
// implements it; share one reader with any other consumer of the same input.
type LineReader interface {
	ReadString(delim byte) (string, error)
}

// TerminalConfirmer asks on out and reads a single answer line from in.
type TerminalConfirmer struct {
	in  LineReader
	out io.Writer
}

// NewTerminalConfirmer creates a confirmer reading answers from in.
func NewTerminalConfirmer(in LineReader, out io.Writer) *TerminalConfirmer {
	return &TerminalConfirmer{in: in, out: out}
}

// Confirm returns true only for an explicit yes ("y", "yes" or "是").
// End of input counts as no.
func (c *TerminalConfirmer) Confirm(prompt string) bool {
	fmt.Fprintf(c.out, "%s [y/N]: ", prompt)

	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(c.out)
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "是":
		return true
	default:
		return false
	}
}
