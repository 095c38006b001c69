package netlink

// FakeNetwork is a test double with scripted link state.
type FakeNetwork struct {
	// Connected controls IsConnected. Connect sets it to true unless
	// ConnectError is set.
	Connected bool

	// IP is returned by WaitForIP.
	IP string

	// ConnectError, if set, will be returned by Connect.
	ConnectError error

	// WaitError, if set, will be returned by WaitForIP.
	WaitError error

	// Connects and Waits count calls.
	Connects int
	Waits    int
}

// NewFakeNetwork creates a connected FakeNetwork with the given address.
func NewFakeNetwork(ip string) *FakeNetwork {
	return &FakeNetwork{Connected: true, IP: ip}
}

// IsConnected reports the scripted link state.
func (f *FakeNetwork) IsConnected() bool {
	return f.Connected
}

// Connect records the call and brings the scripted link up.
func (f *FakeNetwork) Connect() error {
	f.Connects++
	if f.ConnectError != nil {
		return f.ConnectError
	}
	f.Connected = true
	return nil
}

// WaitForIP returns the scripted address.
func (f *FakeNetwork) WaitForIP() (string, error) {
	f.Waits++
	if f.WaitError != nil {
		return "", f.WaitError
	}
	return f.IP, nil
}
