// Package display is the UI collaborator consumed by the control core.
// Pixel rendering is out of scope here: the core only pushes short status
// strings, power state, and a brightness fraction.
package display

import (
	"log"
	"time"
)

// Display receives UI side effects from the control core.
type Display interface {
	// ShowStatus shows a transient status line for the given duration.
	ShowStatus(text string, d time.Duration) error

	// SetPower turns the panel on or off. Power is a UI concern only and
	// never affects control logic.
	SetPower(on bool) error

	// SetBrightness sets the backlight fraction in (0, 1].
	SetBrightness(frac float64) error
}

// Muted wraps a Display so a failing peripheral can never take down the
// control loop: after the first error is recorded, every call becomes a
// no-op and the device runs headless.
type Muted struct {
	inner  Display
	failed bool
}

// NewMuted wraps d with the record-failure-then-no-op policy.
func NewMuted(d Display) *Muted {
	return &Muted{inner: d}
}

// Failed reports whether the wrapped display has been muted.
func (m *Muted) Failed() bool { return m.failed }

// ShowStatus implements Display.
func (m *Muted) ShowStatus(text string, d time.Duration) error {
	if m.failed {
		return nil
	}
	m.mute(m.inner.ShowStatus(text, d))
	return nil
}

// SetPower implements Display.
func (m *Muted) SetPower(on bool) error {
	if m.failed {
		return nil
	}
	m.mute(m.inner.SetPower(on))
	return nil
}

// SetBrightness implements Display.
func (m *Muted) SetBrightness(frac float64) error {
	if m.failed {
		return nil
	}
	m.mute(m.inner.SetBrightness(frac))
	return nil
}

func (m *Muted) mute(err error) {
	if err != nil {
		log.Printf("display error, going headless: %v", err)
		m.failed = true
	}
}
