//go:build !linux

package gpio

import "errors"

// RealLine is not available on non-Linux platforms.
type RealLine struct{}

// NewRealLine returns an error on non-Linux platforms.
func NewRealLine(pin int) (*RealLine, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

// SetHigh is not implemented on non-Linux platforms.
func (l *RealLine) SetHigh() error {
	return errors.New("gpio: not supported")
}

// SetLow is not implemented on non-Linux platforms.
func (l *RealLine) SetLow() error {
	return errors.New("gpio: not supported")
}

// Close is not implemented on non-Linux platforms.
func (l *RealLine) Close() error {
	return nil
}
