package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for telemetry output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the telemetry details. Temperature and Humidity
// are pointers so a never-seeded channel serializes as an explicit null
// sentinel alongside its fault flag, never as a fake numeric value.
type StatusInner struct {
	Event  string `json:"event,omitempty"`
	Reason string `json:"reason,omitempty"`

	Mode string `json:"mode"`

	Temperature      *float64 `json:"temperature"`
	TemperatureFault bool     `json:"temperature_fault"`
	Humidity         *float64 `json:"humidity"`
	HumidityFault    bool     `json:"humidity_fault"`

	Target      float64 `json:"target"`
	HeaterOn    bool    `json:"heater_on"`
	Armed       bool    `json:"armed"`
	FreezeGuard bool    `json:"freeze_guard"`

	DisplaySleeping bool    `json:"display_sleeping"`
	Brightness      float64 `json:"brightness"`

	UptimeSeconds int64      `json:"uptime_seconds"`
	StartTime     string     `json:"start_time"`
	Timestamp     string     `json:"timestamp"`
	MQTT          MQTTStatus `json:"mqtt"`
	Config        ConfigJSON `json:"config"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	PollMs   int64  `json:"poll_ms"`
	SampleMs int64  `json:"sample_ms"`
	Broker   string `json:"broker"`
	HTTPAddr string `json:"http_addr"`
	APName   string `json:"ap_name,omitempty"`
}

func buildInner(snap Snapshot) StatusInner {
	inner := StatusInner{
		Mode:             snap.Mode,
		TemperatureFault: !snap.TempValid,
		HumidityFault:    !snap.HumValid,
		Target:           snap.Target,
		HeaterOn:         snap.HeaterOn,
		Armed:            snap.Armed,
		FreezeGuard:      snap.FreezeGuard,
		DisplaySleeping:  snap.DisplaySleeping,
		Brightness:       snap.Brightness,
		UptimeSeconds:    int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:        snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:        snap.Now.UTC().Format(time.RFC3339),
		MQTT:             MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Config: ConfigJSON{
			PollMs:   snap.Config.PollMs,
			SampleMs: snap.Config.SampleMs,
			Broker:   snap.Config.Broker,
			HTTPAddr: snap.Config.HTTPAddr,
			APName:   snap.Config.APName,
		},
	}
	if snap.TempValid {
		t := snap.Temp
		inner.Temperature = &t
	}
	if snap.HumValid {
		h := snap.Hum
		inner.Humidity = &h
	}
	return inner
}

// FormatJSON returns the JSON telemetry for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON telemetry for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason
	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
