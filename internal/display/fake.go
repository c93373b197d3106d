package display

import "time"

// Fake records display calls for test assertions.
type Fake struct {
	// Statuses contains every status line shown.
	Statuses []string

	// Power is the last power state set; PowerCalls counts transitions.
	Power      bool
	PowerCalls int

	// Brightness is the last brightness fraction set.
	Brightness float64

	// Err, if set, is returned by every call (to exercise Muted).
	Err error
}

// NewFake creates a Fake display, powered on.
func NewFake() *Fake {
	return &Fake{Power: true}
}

// ShowStatus records the status line.
func (f *Fake) ShowStatus(text string, d time.Duration) error {
	if f.Err != nil {
		return f.Err
	}
	f.Statuses = append(f.Statuses, text)
	return nil
}

// SetPower records the power state.
func (f *Fake) SetPower(on bool) error {
	if f.Err != nil {
		return f.Err
	}
	f.Power = on
	f.PowerCalls++
	return nil
}

// SetBrightness records the brightness.
func (f *Fake) SetBrightness(frac float64) error {
	if f.Err != nil {
		return f.Err
	}
	f.Brightness = frac
	return nil
}

// LastStatus returns the most recent status line, or "".
func (f *Fake) LastStatus() string {
	if len(f.Statuses) == 0 {
		return ""
	}
	return f.Statuses[len(f.Statuses)-1]
}
