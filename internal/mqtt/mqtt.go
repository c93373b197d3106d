// Package mqtt provides the thermostat's broker transport: telemetry and
// lifecycle events out, commands in, with abstraction for testing.
package mqtt

import (
	"encoding/json"
	"time"
)

// Topics.
const (
	// TopicTelemetry carries retained telemetry snapshots.
	TopicTelemetry = "home/thermostat/telemetry"
	// TopicSystem carries lifecycle events (startup, shutdown, heartbeat).
	TopicSystem = "home/thermostat/system"
	// TopicCommand is subscribed for inbound commands.
	TopicCommand = "home/thermostat/command"
)

// Publisher publishes to the broker.
type Publisher interface {
	// PublishTelemetry sends a pre-formatted telemetry snapshot, retained
	// so late subscribers see the last known state.
	PublishTelemetry(payload []byte) error

	// PublishSystem sends a system lifecycle event.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the broker connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent represents a system lifecycle event.
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN", "HEARTBEAT"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// SystemPayload is the JSON envelope for simple system events that don't
// carry a full telemetry snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly.
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}

// CommandEnvelope is the wire form on the command topic: the shared
// command schema plus the token the external surfaces require.
type CommandEnvelope struct {
	Token string `json:"token,omitempty"`

	Action  string  `json:"action"`
	Delta   int     `json:"delta,omitempty"`
	Level   float64 `json:"level,omitempty"`
	Name    string  `json:"name,omitempty"`
	Secret  string  `json:"secret,omitempty"`
	Enabled bool    `json:"enabled,omitempty"`
}
