//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealLine drives a GPIO output on actual hardware using Linux GPIO character device.
type RealLine struct {
	chip *gpiocdev.Chip
	line *gpiocdev.Line
}

// NewRealLine requests the given BCM pin as an output, initially low.
func NewRealLine(pin int) (*RealLine, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	line, err := chip.RequestLine(pin, gpiocdev.AsOutput(0))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request buzzer pin %d: %w", pin, err)
	}

	return &RealLine{
		chip: chip,
		line: line,
	}, nil
}

// SetHigh drives the output to logic high.
func (l *RealLine) SetHigh() error {
	if err := l.line.SetValue(1); err != nil {
		return fmt.Errorf("set pin high: %w", err)
	}
	return nil
}

// SetLow drives the output to logic low.
func (l *RealLine) SetLow() error {
	if err := l.line.SetValue(0); err != nil {
		return fmt.Errorf("set pin low: %w", err)
	}
	return nil
}

// Close drives the pin low and releases GPIO resources.
// Leaving the pin low keeps the buzzer silent across restarts.
func (l *RealLine) Close() error {
	var errs []error

	if l.line != nil {
		if err := l.line.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("silence pin: %w", err))
		}
		if err := l.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close pin: %w", err))
		}
	}
	if l.chip != nil {
		if err := l.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
