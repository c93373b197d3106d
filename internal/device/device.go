// Package device owns the top-level thermostat state machine: the
// Provisioning/Normal mode decision at boot, the Normal-mode control loop
// state (sampling, heater policy, button classification, display sleep),
// and the command surface shared by buttons, HTTP, and MQTT.
//
// All mutable core state is touched only from the goroutine driving
// Tick; external surfaces hand commands in through a channel.
package device

import (
	"time"

	"github.com/sweeney/thermostat/internal/netlink"
)

// Mode is the top-level device mode.
type Mode string

const (
	ModeProvisioning Mode = "PROVISIONING"
	ModeNormal       Mode = "NORMAL"
)

// CommandKind identifies a command from any surface.
type CommandKind string

const (
	CmdAdjustTarget    CommandKind = "ADJUST_TARGET"
	CmdToggleArmed     CommandKind = "TOGGLE_ARMED"
	CmdSetDisplayPower CommandKind = "SET_DISPLAY_POWER"
	CmdSubmitIdentity  CommandKind = "SUBMIT_IDENTITY"
	CmdFactoryReset    CommandKind = "FACTORY_RESET"
	CmdSetFreezeGuard  CommandKind = "SET_FREEZE_GUARD"
)

// Command carries one command and its arguments. Unused fields are zero.
type Command struct {
	Kind CommandKind

	// Delta is ±1 for CmdAdjustTarget.
	Delta int

	// Level is the display power for CmdSetDisplayPower:
	// 0 sleeps the display, >0 wakes it and sets the brightness fraction.
	Level float64

	// Name/Secret are the identity for CmdSubmitIdentity.
	Name   string
	Secret string

	// Enabled is the flag for CmdSetFreezeGuard.
	Enabled bool
}

// Restarter restarts the device. The real implementation reboots the
// board; tests observe the call instead.
type Restarter interface {
	Restart(reason string)
}

// Config holds the mode manager's timing knobs.
type Config struct {
	// SampleInterval is the sensor cadence inside the fast button tick.
	SampleInterval time.Duration

	// WarmupDelay holds heater evaluation after the smoother first seeds.
	WarmupDelay time.Duration

	// InactivityTimeout blanks the display after this long without
	// button activity. UI power only; heater ticks are never suppressed.
	InactivityTimeout time.Duration

	// SavedHold is how long the "settings saved" status stays up before
	// the provisioning restart.
	SavedHold time.Duration

	// ResetHold is how long reset statuses stay up before restarting.
	ResetHold time.Duration

	// JoinAttempts and JoinSpacing bound network association at boot.
	JoinAttempts int
	JoinSpacing  time.Duration

	// APName is the provisioning access point SSID.
	APName string
}

// DefaultConfig returns the reference timing.
func DefaultConfig() Config {
	return Config{
		SampleInterval:    2 * time.Second,
		WarmupDelay:       4 * time.Second,
		InactivityTimeout: 5 * time.Minute,
		SavedHold:         2 * time.Second,
		ResetHold:         1 * time.Second,
		JoinAttempts:      netlink.JoinAttempts,
		JoinSpacing:       netlink.JoinSpacingMs * time.Millisecond,
		APName:            "thermostat-setup",
	}
}
