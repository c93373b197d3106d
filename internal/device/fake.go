package device

// FakeRestarter records restart requests for test assertions.
type FakeRestarter struct {
	// Calls contains the reasons passed to Restart, in order.
	Calls []string
}

// NewFakeRestarter creates a FakeRestarter.
func NewFakeRestarter() *FakeRestarter {
	return &FakeRestarter{}
}

// Restart records the reason.
func (f *FakeRestarter) Restart(reason string) {
	f.Calls = append(f.Calls, reason)
}
