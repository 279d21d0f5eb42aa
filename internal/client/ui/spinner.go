package ui

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"
)

// SpinnerIndicator draws a spinner on a terminal. Start and Stop do nothing
// when out is not a terminal file.
type SpinnerIndicator struct {
	mu sync.Mutex
	s  *spinner.Spinner
}

func NewSpinnerIndicator(out io.Writer) *SpinnerIndicator {
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return &SpinnerIndicator{}
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriterFile(f))
	return &SpinnerIndicator{s: s}
}

// Start shows label next to the spinner. Restarting only updates the label.
func (i *SpinnerIndicator) Start(label string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.s == nil {
		return
	}
	i.s.Suffix = " " + label
	if !i.s.Active() {
		i.s.Start()
	}
}

func (i *SpinnerIndicator) Stop() {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.s != nil {
		i.s.Stop()
	}
}
