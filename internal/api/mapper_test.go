package api

import (
	"testing"

	"github.com/sweeney/thermostat/internal/device"
)

func TestToDeviceValidCommands(t *testing.T) {
	cases := []struct {
		in   Command
		want device.Command
	}{
		{Command{Action: ActionAdjustTarget, Delta: 1}, device.Command{Kind: device.CmdAdjustTarget, Delta: 1}},
		{Command{Action: ActionAdjustTarget, Delta: -1}, device.Command{Kind: device.CmdAdjustTarget, Delta: -1}},
		{Command{Action: ActionToggleArmed}, device.Command{Kind: device.CmdToggleArmed}},
		{Command{Action: ActionSetDisplayPower, Level: 0.5}, device.Command{Kind: device.CmdSetDisplayPower, Level: 0.5}},
		{Command{Action: ActionSubmitIdentity, Name: "home", Secret: "s"}, device.Command{Kind: device.CmdSubmitIdentity, Name: "home", Secret: "s"}},
		{Command{Action: ActionFactoryReset}, device.Command{Kind: device.CmdFactoryReset}},
		{Command{Action: ActionSetFreezeGuard, Enabled: true}, device.Command{Kind: device.CmdSetFreezeGuard, Enabled: true}},
	}

	for _, tc := range cases {
		got, err := ToDevice(tc.in)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tc.in.Action, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%s: got %+v, want %+v", tc.in.Action, got, tc.want)
		}
	}
}

func TestToDeviceRejectsInvalid(t *testing.T) {
	cases := []Command{
		{Action: "reboot_into_space"},
		{Action: ActionAdjustTarget, Delta: 0},
		{Action: ActionAdjustTarget, Delta: 5},
		{Action: ActionSetDisplayPower, Level: 1.5},
		{Action: ActionSetDisplayPower, Level: -0.1},
		{Action: ActionSubmitIdentity, Name: "x"},
	}

	for _, tc := range cases {
		if _, err := ToDevice(tc); err == nil {
			t.Errorf("%+v: expected error", tc)
		}
	}
}
