//go:build linux

package buttons

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealReader reads the buttons from actual hardware using the Linux GPIO
// character device.
type RealReader struct {
	chip    *gpiocdev.Chip
	upPin   *gpiocdev.Line
	downPin *gpiocdev.Line
}

// NewRealReader requests the two button lines as pulled-up inputs.
// The buttons short to ground, so the idle level is high.
func NewRealReader(pinUp, pinDown int) (*RealReader, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	upLine, err := chip.RequestLine(pinUp, gpiocdev.AsInput, gpiocdev.WithPullUp)
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request up pin %d: %w", pinUp, err)
	}

	downLine, err := chip.RequestLine(pinDown, gpiocdev.AsInput, gpiocdev.WithPullUp)
	if err != nil {
		upLine.Close()
		chip.Close()
		return nil, fmt.Errorf("request down pin %d: %w", pinDown, err)
	}

	return &RealReader{
		chip:    chip,
		upPin:   upLine,
		downPin: downLine,
	}, nil
}

// Read returns the logical pressed states.
// Inverts raw levels: raw low (0) = pressed, raw high (1) = released.
func (r *RealReader) Read() (bool, bool, error) {
	upRaw, err := r.upPin.Value()
	if err != nil {
		return false, false, fmt.Errorf("read up pin: %w", err)
	}

	downRaw, err := r.downPin.Value()
	if err != nil {
		return false, false, fmt.Errorf("read down pin: %w", err)
	}

	return upRaw == 0, downRaw == 0, nil
}

// Close releases GPIO resources.
func (r *RealReader) Close() error {
	var errs []error

	if r.upPin != nil {
		if err := r.upPin.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close up pin: %w", err))
		}
	}
	if r.downPin != nil {
		if err := r.downPin.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close down pin: %w", err))
		}
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
