// Package buttons provides two-button GPIO input reading with hardware
// abstraction. The real implementation uses the Linux GPIO character
// device. The fake implementation allows testing without hardware.
package buttons

// Reader reads the logical state of the two front-panel buttons.
type Reader interface {
	// Read returns the logical pressed states of Up and Down.
	// The raw lines are idle-high: raw low = pressed.
	Read() (up, down bool, err error)

	// Close releases GPIO resources.
	Close() error
}

// Pin definitions (BCM numbering)
const (
	DefaultPinUp   = 23
	DefaultPinDown = 24
)
