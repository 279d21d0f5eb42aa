package ui

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalNotifier_Plain(t *testing.T) {
	var buf bytes.Buffer
	n := NewTerminalNotifier(&buf, false)

	n.Success("Project created!")
	n.Error("Failed to create project")

	assert.Equal(t, "✓ Project created!\n✗ Failed to create project\n", buf.String())
}

func TestTerminalNotifier_Colored(t *testing.T) {
	var buf bytes.Buffer
	n := NewTerminalNotifier(&buf, true)

	n.Error("Failed to load secrets")

	out := buf.String()
	assert.Contains(t, out, "\x1b[31m")
	assert.Contains(t, out, "Failed to load secrets")
}

func TestPromptConfirmer(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{" yes \n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"y", true},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		c := NewPromptConfirmer(bufio.NewReader(strings.NewReader(tt.in)), &out)
		assert.Equal(t, tt.want, c.Confirm("Are you sure you want to delete this secret?"), "input %q", tt.in)
		assert.Equal(t, "Are you sure you want to delete this secret? [y/N]: ", out.String())
	}
}

func TestSystemClipboard_UsesWriter(t *testing.T) {
	old := writeAll
	t.Cleanup(func() { writeAll = old })

	var got string
	writeAll = func(s string) error { got = s; return nil }
	require.NoError(t, SystemClipboard{}.Write("s3cr3t"))
	assert.Equal(t, "s3cr3t", got)

	writeAll = func(string) error { return errors.New("no clipboard utility") }
	require.Error(t, SystemClipboard{}.Write("x"))
}

func TestSpinnerIndicator_SilentWithoutTerminal(t *testing.T) {
	var buf bytes.Buffer
	file, err := os.CreateTemp(t.TempDir(), "spinner")
	require.NoError(t, err)
	t.Cleanup(func() { _ = file.Close() })

	for name, out := range map[string]io.Writer{"buffer": &buf, "regular file": file} {
		t.Run(name, func(t *testing.T) {
			i := NewSpinnerIndicator(out)
			i.Start("Loading projects")
			i.Start("Loading secrets")
			time.Sleep(150 * time.Millisecond)
			i.Stop()
			i.Stop()
		})
	}

	assert.Empty(t, buf.String())
	info, err := file.Stat()
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}
