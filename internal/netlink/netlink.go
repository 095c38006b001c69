// Package netlink monitors and repairs the wireless network link.
// The real implementation reads Linux sysfs and shells out to the
// system network manager; the fake allows testing without a network.
package netlink

import "net"

// Network reports and restores link state.
type Network interface {
	// IsConnected reports whether the link is up with an address assigned.
	IsConnected() bool

	// Connect attempts to (re)establish the link.
	Connect() error

	// WaitForIP blocks until an address is assigned or a timeout
	// elapses, returning the address.
	WaitForIP() (string, error)
}

// DefaultInterface is the wireless interface on the target board.
const DefaultInterface = "wlan0"

// firstIPv4 returns the first IPv4 address in addrs, or "".
func firstIPv4(addrs []net.Addr) string {
	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok {
			continue
		}
		if ip4 := ipNet.IP.To4(); ip4 != nil && !ip4.IsLoopback() {
			return ip4.String()
		}
	}
	return ""
}
