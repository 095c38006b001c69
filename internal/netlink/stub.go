//go:build !linux

package netlink

import "errors"

// RealNetwork is not available on non-Linux platforms.
type RealNetwork struct{}

// NewRealNetwork returns a stub on non-Linux platforms.
func NewRealNetwork(iface string, connectCmd []string) *RealNetwork {
	return &RealNetwork{}
}

// IsConnected always reports false on non-Linux platforms.
func (n *RealNetwork) IsConnected() bool {
	return false
}

// Connect is not implemented on non-Linux platforms.
func (n *RealNetwork) Connect() error {
	return errors.New("netlink: not supported on this platform (requires Linux)")
}

// WaitForIP is not implemented on non-Linux platforms.
func (n *RealNetwork) WaitForIP() (string, error) {
	return "", errors.New("netlink: not supported")
}
