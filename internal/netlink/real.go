package netlink

import (
	"context"
	"fmt"
	"os/exec"
)

// RealManager drives NetworkManager through nmcli. The daemon runs as a
// systemd unit with the rights to manage the wifi device.
type RealManager struct {
	// Iface is the wifi interface, e.g. "wlan0".
	Iface string
}

// NewRealManager creates a manager for the given wifi interface.
func NewRealManager(iface string) *RealManager {
	return &RealManager{Iface: iface}
}

// Join makes one association attempt.
func (m *RealManager) Join(ctx context.Context, name, secret string) error {
	cmd := exec.CommandContext(ctx, "nmcli", "device", "wifi", "connect", name,
		"password", secret, "ifname", m.Iface)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("nmcli connect: %w (%s)", err, out)
	}
	return nil
}

// StartAccessPoint brings up the provisioning hotspot.
func (m *RealManager) StartAccessPoint(ctx context.Context, ssid string) error {
	cmd := exec.CommandContext(ctx, "nmcli", "device", "wifi", "hotspot",
		"ifname", m.Iface, "ssid", ssid)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("nmcli hotspot: %w (%s)", err, out)
	}
	return nil
}

// StopAccessPoint tears the hotspot down.
func (m *RealManager) StopAccessPoint(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, "nmcli", "connection", "down", "Hotspot")
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("nmcli hotspot down: %w (%s)", err, out)
	}
	return nil
}
