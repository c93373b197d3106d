package api

import (
	"fmt"

	"github.com/sweeney/thermostat/internal/device"
)

// ToDevice validates a wire command and maps it to a device command.
func ToDevice(c Command) (device.Command, error) {
	switch c.Action {
	case ActionAdjustTarget:
		if c.Delta != 1 && c.Delta != -1 {
			return device.Command{}, fmt.Errorf("adjust_target: delta must be ±1, got %d", c.Delta)
		}
		return device.Command{Kind: device.CmdAdjustTarget, Delta: c.Delta}, nil

	case ActionToggleArmed:
		return device.Command{Kind: device.CmdToggleArmed}, nil

	case ActionSetDisplayPower:
		if c.Level < 0 || c.Level > 1 {
			return device.Command{}, fmt.Errorf("set_display_power: level must be in [0,1], got %v", c.Level)
		}
		return device.Command{Kind: device.CmdSetDisplayPower, Level: c.Level}, nil

	case ActionSubmitIdentity:
		if len(c.Name) < 2 {
			return device.Command{}, fmt.Errorf("submit_identity: name too short")
		}
		return device.Command{Kind: device.CmdSubmitIdentity, Name: c.Name, Secret: c.Secret}, nil

	case ActionFactoryReset:
		return device.Command{Kind: device.CmdFactoryReset}, nil

	case ActionSetFreezeGuard:
		return device.Command{Kind: device.CmdSetFreezeGuard, Enabled: c.Enabled}, nil

	default:
		return device.Command{}, fmt.Errorf("unknown action %q", c.Action)
	}
}
