package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
)

// TerminalNotifier prints one line per message.
type TerminalNotifier struct {
	mu      sync.Mutex
	out     io.Writer
	success *color.Color
	failure *color.Color
}

// NewTerminalNotifier writes to out. With colorize false the markers are
// printed without escape codes.
func NewTerminalNotifier(out io.Writer, colorize bool) *TerminalNotifier {
	ok := color.New(color.FgGreen)
	bad := color.New(color.FgRed)
	if colorize {
		ok.EnableColor()
		bad.EnableColor()
	} else {
		ok.DisableColor()
		bad.DisableColor()
	}
	return &TerminalNotifier{out: out, success: ok, failure: bad}
}

func (n *TerminalNotifier) Success(msg string) {
	n.print(n.success.Sprint("✓"), msg)
}

func (n *TerminalNotifier) Error(msg string) {
	n.print(n.failure.Sprint("✗"), msg)
}

func (n *TerminalNotifier) print(marker, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.out, "%s %s\n", marker, msg)
}
