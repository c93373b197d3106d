// Package status provides a thread-safe status tracker for the thermostat
// daemon. The control loop writes it every tick; HTTP handlers and the
// MQTT publisher read point-in-time snapshots.
package status

import (
	"sync"
	"time"
)

// Config contains daemon configuration for display.
type Config struct {
	PollMs   int64
	SampleMs int64
	Broker   string
	HTTPAddr string
	APName   string
}

// State is the control-side portion of the snapshot, rewritten by the
// control loop every tick.
type State struct {
	Mode string

	// Temp/Hum are smoothed values; the Valid flags distinguish a real
	// reading from the never-seeded hard fault state.
	Temp      float64
	TempValid bool
	Hum       float64
	HumValid  bool

	Target      float64
	HeaterOn    bool
	Armed       bool
	FreezeGuard bool

	DisplaySleeping bool
	Brightness      float64
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	State
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update replaces the control-side state. Called from the control loop on
// every tick.
func (t *Tracker) Update(s State) {
	t.mu.Lock()
	t.snap.State = s
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
