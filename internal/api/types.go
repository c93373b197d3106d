// Package api defines the JSON command schema shared by the HTTP and MQTT
// command surfaces, and its mapping onto device commands.
package api

// Actions accepted on the command surfaces.
const (
	ActionAdjustTarget    = "adjust_target"
	ActionToggleArmed     = "toggle_armed"
	ActionSetDisplayPower = "set_display_power"
	ActionSubmitIdentity  = "submit_identity"
	ActionFactoryReset    = "factory_reset"
	ActionSetFreezeGuard  = "set_freeze_guard"
)

// Command is the wire form of a command request.
type Command struct {
	Action string `json:"action"`

	// Delta is ±1 for adjust_target.
	Delta int `json:"delta,omitempty"`

	// Level is the display power for set_display_power: 0 sleeps,
	// (0, 1] wakes and sets the brightness fraction.
	Level float64 `json:"level,omitempty"`

	// Name and Secret are the identity for submit_identity.
	Name   string `json:"name,omitempty"`
	Secret string `json:"secret,omitempty"`

	// Enabled is the flag for set_freeze_guard.
	Enabled bool `json:"enabled,omitempty"`
}
