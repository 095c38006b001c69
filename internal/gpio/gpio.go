// Package gpio provides digital output control with hardware abstraction.
// The real implementation uses Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

// Line drives a single digital output.
type Line interface {
	// SetHigh drives the output to logic high.
	SetHigh() error

	// SetLow drives the output to logic low.
	SetLow() error

	// Close drives the output low and releases GPIO resources.
	Close() error
}

// DefaultPinBuzzer is the BCM pin the piezo buzzer is wired to.
const DefaultPinBuzzer = 5
