package config

import (
	"log"
	"os"
	"strconv"
)

// ApplyEnv overrides cfg fields from THERMOSTAT_* environment variables.
// Call godotenv.Load first if a .env file should feed these.
func ApplyEnv(cfg *Config) {
	cfg.Broker = getEnv("THERMOSTAT_BROKER", cfg.Broker)
	cfg.Token = getEnv("THERMOSTAT_TOKEN", cfg.Token)
	cfg.HTTPAddr = getEnv("THERMOSTAT_HTTP_ADDR", cfg.HTTPAddr)
	cfg.PollMs = getEnvInt("THERMOSTAT_POLL_MS", cfg.PollMs)
	cfg.SampleMs = getEnvInt("THERMOSTAT_SAMPLE_MS", cfg.SampleMs)
	cfg.StorePath = getEnv("THERMOSTAT_STORE", cfg.StorePath)
	cfg.SensorDevice = getEnv("THERMOSTAT_SENSOR", cfg.SensorDevice)
	cfg.APName = getEnv("THERMOSTAT_AP_NAME", cfg.APName)
	cfg.WifiIface = getEnv("THERMOSTAT_WIFI_IFACE", cfg.WifiIface)
	cfg.Pins.Up = getEnvInt("THERMOSTAT_PIN_UP", cfg.Pins.Up)
	cfg.Pins.Down = getEnvInt("THERMOSTAT_PIN_DOWN", cfg.Pins.Down)
	cfg.Pins.Heater = getEnvInt("THERMOSTAT_PIN_HEATER", cfg.Pins.Heater)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("warning: %s=%q is not an integer, keeping %d", key, v, fallback)
		return fallback
	}
	return n
}
