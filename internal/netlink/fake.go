package netlink

import (
	"context"
	"errors"
)

// FakeManager scripts join results and records AP activity for tests.
type FakeManager struct {
	// FailJoins makes the first N Join calls fail.
	FailJoins int

	// JoinCalls counts association attempts.
	JoinCalls int

	// LastName and LastSecret record the identity last joined with.
	LastName   string
	LastSecret string

	// APRunning tracks the provisioning hotspot.
	APRunning bool
	APSSID    string
}

// NewFakeManager creates a FakeManager whose joins succeed immediately.
func NewFakeManager() *FakeManager {
	return &FakeManager{}
}

// Join fails the first FailJoins attempts, then succeeds.
func (m *FakeManager) Join(ctx context.Context, name, secret string) error {
	m.JoinCalls++
	m.LastName = name
	m.LastSecret = secret
	if m.JoinCalls <= m.FailJoins {
		return errors.New("association failed")
	}
	return nil
}

// StartAccessPoint records the hotspot coming up.
func (m *FakeManager) StartAccessPoint(ctx context.Context, ssid string) error {
	m.APRunning = true
	m.APSSID = ssid
	return nil
}

// StopAccessPoint records the hotspot going down.
func (m *FakeManager) StopAccessPoint(ctx context.Context) error {
	m.APRunning = false
	return nil
}
