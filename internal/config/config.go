// Package config loads daemon configuration from an optional YAML file,
// then applies environment overrides. Precedence, lowest to highest:
// built-in defaults, YAML file, environment.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full daemon configuration.
type Config struct {
	// Broker is the MQTT broker URL. Empty disables MQTT.
	Broker string `yaml:"broker"`

	// Token authenticates HTTP and MQTT commands. Empty disables
	// command authentication.
	Token string `yaml:"token"`

	HTTPAddr string `yaml:"http_addr"`

	// PollMs is the control loop tick; SampleMs the sensor cadence.
	PollMs   int `yaml:"poll_ms"`
	SampleMs int `yaml:"sample_ms"`

	// StorePath is the settings region backing file (or block device).
	StorePath string `yaml:"store_path"`

	// SensorDevice is the IIO sysfs directory of the climate sensor.
	SensorDevice string `yaml:"sensor_device"`

	// APName is the provisioning access point SSID, WifiIface the
	// interface nmcli manages.
	APName    string `yaml:"ap_name"`
	WifiIface string `yaml:"wifi_iface"`

	Pins PinConfig `yaml:"pins"`
}

// PinConfig holds the GPIO line offsets.
type PinConfig struct {
	Up     int `yaml:"up"`
	Down   int `yaml:"down"`
	Heater int `yaml:"heater"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Broker:       "",
		HTTPAddr:     ":8080",
		PollMs:       100,
		SampleMs:     2000,
		StorePath:    "/var/lib/thermostat/settings.bin",
		SensorDevice: "/sys/bus/iio/devices/iio:device0",
		APName:       "thermostat-setup",
		WifiIface:    "wlan0",
		Pins:         PinConfig{Up: 23, Down: 24, Heater: 18},
	}
}

// Load reads the YAML file at path on top of the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
