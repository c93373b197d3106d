// Package relay drives the heater relay output with hardware abstraction.
// The real implementation uses the Linux GPIO character device; the fake
// records transitions for tests.
package relay

// Driver sets the heater relay state.
type Driver interface {
	// Set energizes or releases the relay.
	Set(on bool) error

	// Close releases GPIO resources, leaving the relay off.
	Close() error
}

// DefaultPinHeater is the relay line (BCM numbering).
const DefaultPinHeater = 18
