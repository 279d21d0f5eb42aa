package ui

import "github.com/atotto/clipboard"

var writeAll = clipboard.WriteAll

// SystemClipboard writes to the OS clipboard. On Linux it needs xclip,
// xsel or wl-copy on PATH.
type SystemClipboard struct{}

func (SystemClipboard) Write(text string) error {
	return writeAll(text)
}
