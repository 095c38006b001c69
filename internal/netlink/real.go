//go:build linux

package netlink

import (
	"errors"
	"fmt"
	"net"
	"os"
	"os/exec"
	"strings"
	"time"
)

// RealNetwork manages an actual interface through sysfs and the system
// network manager.
type RealNetwork struct {
	iface        string
	connectCmd   []string
	waitTimeout  time.Duration
	pollInterval time.Duration
}

// NewRealNetwork creates a RealNetwork for the given interface.
// connectCmd overrides the reconnect command; nil uses nmcli.
func NewRealNetwork(iface string, connectCmd []string) *RealNetwork {
	if len(connectCmd) == 0 {
		connectCmd = []string{"nmcli", "device", "connect", iface}
	}
	return &RealNetwork{
		iface:        iface,
		connectCmd:   connectCmd,
		waitTimeout:  30 * time.Second,
		pollInterval: 500 * time.Millisecond,
	}
}

// IsConnected reports whether the interface is operationally up with an
// IPv4 address assigned.
func (n *RealNetwork) IsConnected() bool {
	state, err := os.ReadFile("/sys/class/net/" + n.iface + "/operstate")
	if err != nil || strings.TrimSpace(string(state)) != "up" {
		return false
	}
	_, err = n.addr()
	return err == nil
}

// Connect runs the configured reconnect command.
func (n *RealNetwork) Connect() error {
	out, err := exec.Command(n.connectCmd[0], n.connectCmd[1:]...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w (%s)",
			strings.Join(n.connectCmd, " "), err, strings.TrimSpace(string(out)))
	}
	return nil
}

// WaitForIP polls until the interface holds an IPv4 address, returning it.
func (n *RealNetwork) WaitForIP() (string, error) {
	deadline := time.Now().Add(n.waitTimeout)
	for {
		ip, err := n.addr()
		if err == nil {
			return ip, nil
		}
		if time.Now().After(deadline) {
			return "", fmt.Errorf("no address on %s after %v", n.iface, n.waitTimeout)
		}
		time.Sleep(n.pollInterval)
	}
}

func (n *RealNetwork) addr() (string, error) {
	ifi, err := net.InterfaceByName(n.iface)
	if err != nil {
		return "", fmt.Errorf("interface %s: %w", n.iface, err)
	}
	addrs, err := ifi.Addrs()
	if err != nil {
		return "", fmt.Errorf("addrs on %s: %w", n.iface, err)
	}
	ip := firstIPv4(addrs)
	if ip == "" {
		return "", errors.New("no IPv4 address assigned")
	}
	return ip, nil
}
