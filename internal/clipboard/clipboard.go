// Package clipboard places text on the host clipboard.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned when the host has no usable clipboard.
var ErrUnsupported = errors.New("no clipboard available on this host")

// Writer places text on a clipboard. There is no read-back.
type Writer interface {
	WriteAll(text string) error
}

// System writes to the operating system clipboard.
type System struct{}

// NewSystem returns a Writer for the operating system clipboard.
func NewSystem() System {
	return System{}
}

// Unsupported reports whether no clipboard utility was found on this host.
func (System) Unsupported() bool {
	return clipboard.Unsupported
}

// WriteAll replaces the clipboard contents with text.
func (s System) WriteAll(text string) error {
	if s.Unsupported() {
		return ErrUnsupported
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("writing clipboard: %w", err)
	}
	return nil
}

// Memory is an in-process clipboard, used where no system clipboard exists.
type Memory struct {
	text string
}

// WriteAll stores text.
func (m *Memory) WriteAll(text string) error {
	m.text = text
	return nil
}

// Text returns the last written text.
func (m *Memory) Text() string {
	return m.text
}
