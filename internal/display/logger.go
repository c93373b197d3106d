package display

import (
	"log"
	"time"
)

// Logger is the headless default display: status lines go to the process
// log. It never fails.
type Logger struct{}

// NewLogger creates a Logger display.
func NewLogger() *Logger { return &Logger{} }

// ShowStatus logs the status line.
func (l *Logger) ShowStatus(text string, d time.Duration) error {
	log.Printf("display: %s", text)
	return nil
}

// SetPower logs the power change.
func (l *Logger) SetPower(on bool) error {
	if on {
		log.Printf("display: power on")
	} else {
		log.Printf("display: power off")
	}
	return nil
}

// SetBrightness logs the brightness change.
func (l *Logger) SetBrightness(frac float64) error {
	log.Printf("display: brightness %.2f", frac)
	return nil
}
