// Package logic contains pure business logic for the thermostat core:
// sample smoothing, the heater control policy, and button classification.
// This package has NO external dependencies (no GPIO, MQTT, OS, or time.Sleep).
// Time is always injectable via time.Time parameters.
package logic

import "time"

// Regime selects which heater control policy is active.
type Regime string

const (
	// RegimeManual tracks the user target with an armed latch and no hysteresis.
	RegimeManual Regime = "MANUAL"
	// RegimeFreezeGuard holds the heater inside a fixed hysteresis band and
	// ignores the manual latch and target entirely.
	RegimeFreezeGuard Regime = "FREEZE_GUARD"
)

// Temperature limits and thresholds, in display units (°F).
const (
	TargetMin = 50.0
	TargetMax = 90.0

	// FreezeGuard hysteresis band: heater on below FreezeOnBelow, off at or
	// above FreezeOffAt, previous state held in between.
	FreezeOnBelow = 38.0
	FreezeOffAt   = 40.0
)

// DefaultTarget is the manual-regime target used before any adjustment.
const DefaultTarget = 70.0

// AnnounceDuration is how long a transient state-change announcement
// stays on the display.
const AnnounceDuration = 2 * time.Second

// Announcement is a short-lived status string emitted on state changes.
// It is a side effect for the display collaborator, never a control input.
type Announcement struct {
	Text     string
	Duration time.Duration
}

// ButtonEventType classifies a button gesture.
type ButtonEventType string

const (
	// Short presses adjust the manual target.
	EventTargetUp   ButtonEventType = "TARGET_UP"
	EventTargetDown ButtonEventType = "TARGET_DOWN"
	// Long presses toggle latches.
	EventToggleArmed       ButtonEventType = "TOGGLE_ARMED"
	EventToggleFreezeGuard ButtonEventType = "TOGGLE_FREEZE_GUARD"
	// Dual-button holds escalate.
	EventSleep     ButtonEventType = "SLEEP"
	EventWifiReset ButtonEventType = "WIFI_RESET"
	// Wake is emitted when a press ends display sleep.
	EventWake ButtonEventType = "WAKE"
)

// ButtonEvent is a classified gesture to be mapped to a command.
type ButtonEvent struct {
	Timestamp time.Time
	Type      ButtonEventType
}

// ButtonInput is one tick's worth of logical button levels
// (true = pressed, already inverted from the idle-high raw lines).
type ButtonInput struct {
	Up   bool
	Down bool
	Time time.Time
	// DisplaySleeping routes a press edge to wake handling instead of
	// normal classification.
	DisplaySleeping bool
}

// Button press timing thresholds.
const (
	LongPress  = 1000 * time.Millisecond
	SleepPress = 2000 * time.Millisecond
	WifiReset  = 5000 * time.Millisecond
	WakeSettle = 250 * time.Millisecond
)

// buttonState tracks one physical button across ticks.
type buttonState struct {
	pressed    bool
	pressStart time.Time
	longFired  bool
}
