package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Prompt seams, replaced in tests.
var (
	getSimpleText = promptLine
	getPassword   = func(w io.Writer) ([]byte, error) { return getHidden("Enter password: ", w) }
	getHidden     = promptHidden

	readPassword = term.ReadPassword
)

// promptLine shows label on its own line followed by a "> " cursor and
// returns the trimmed answer. A final line without a newline still counts.
func promptLine(r *bufio.Reader, label string, w io.Writer) (string, error) {
	if _, err := fmt.Fprintf(w, "%s\n> ", label); err != nil {
		return "", err
	}
	line, err := r.ReadString('\n')
	if errors.Is(err, io.EOF) && line != "" {
		err = nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptHidden reads one line from the terminal with echo off. The caller
// owns the returned bytes and wipes them.
func promptHidden(label string, w io.Writer) ([]byte, error) {
	if _, err := io.WriteString(w, label); err != nil {
		return nil, err
	}
	secret, err := readPassword(int(os.Stdin.Fd()))
	// echo is off, so the user's Enter never reached the screen
	fmt.Fprintln(w)
	return secret, err
}

// parseID reads a positive numeric id argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}
