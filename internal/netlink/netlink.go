// Package netlink abstracts network identity handling: joining a WiFi
// network and running the provisioning access point. Radio association
// mechanics live behind this interface; the core only needs join results
// and identity presence.
package netlink

import "context"

// Manager joins networks and controls the provisioning access point.
type Manager interface {
	// Join makes a single association attempt with the given identity.
	Join(ctx context.Context, name, secret string) error

	// StartAccessPoint brings up the local provisioning AP.
	StartAccessPoint(ctx context.Context, ssid string) error

	// StopAccessPoint tears the AP down. The daemon never calls this in
	// production: provisioning always ends in a restart, which drops the
	// hotspot with the rest of the radio state. It exists for operators
	// and manual recovery.
	StopAccessPoint(ctx context.Context) error
}

// Association retry budget: attempts at fixed spacing before falling back
// to provisioning.
const (
	JoinAttempts  = 30
	JoinSpacingMs = 500
)
