package relay

// FakeDriver records relay transitions for test assertions.
type FakeDriver struct {
	// On is the current relay state.
	On bool

	// Transitions records every state passed to Set.
	Transitions []bool

	// SetError, if set, will be returned by Set.
	SetError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeDriver creates a FakeDriver, initially off.
func NewFakeDriver() *FakeDriver {
	return &FakeDriver{}
}

// Set records the transition.
func (f *FakeDriver) Set(on bool) error {
	if f.SetError != nil {
		return f.SetError
	}
	f.On = on
	f.Transitions = append(f.Transitions, on)
	return nil
}

// Close marks the driver as closed and releases the relay.
func (f *FakeDriver) Close() error {
	f.On = false
	f.Closed = true
	return nil
}
