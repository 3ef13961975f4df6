// Package clipboard copies text to the system clipboard.
package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned when no clipboard utility is available,
// for example on a headless Linux host without xclip, xsel or wl-copy.
var ErrUnsupported = errors.New("no clipboard utility available")

// Writer copies text to a clipboard.
type Writer interface {
	Write(text string) error
}

// System writes to the operating system clipboard.
type System struct{}

// NewSystem creates a System clipboard writer.
func NewSystem() *System {
	return &System{}
}

// Write replaces the clipboard contents with text.
func (System) Write(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	return clipboard.WriteAll(text)
}
