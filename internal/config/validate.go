package config

import "fmt"

// Validate checks configuration correctness. It does not mutate cfg.
func Validate(cfg Config) error {
	if cfg.PollMs <= 0 {
		return fmt.Errorf("poll_ms must be positive, got %d", cfg.PollMs)
	}
	if cfg.SampleMs <= 0 {
		return fmt.Errorf("sample_ms must be positive, got %d", cfg.SampleMs)
	}
	if cfg.SampleMs < cfg.PollMs {
		return fmt.Errorf("sample_ms (%d) must not be shorter than poll_ms (%d)", cfg.SampleMs, cfg.PollMs)
	}
	if cfg.HTTPAddr == "" {
		return fmt.Errorf("http_addr must not be empty")
	}
	if cfg.StorePath == "" {
		return fmt.Errorf("store_path must not be empty")
	}
	if cfg.APName == "" {
		return fmt.Errorf("ap_name must not be empty")
	}

	pins := map[string]int{
		"up":     cfg.Pins.Up,
		"down":   cfg.Pins.Down,
		"heater": cfg.Pins.Heater,
	}
	seen := make(map[int]string)
	for name, pin := range pins {
		if pin < 0 {
			return fmt.Errorf("pin %s must not be negative, got %d", name, pin)
		}
		if prev, ok := seen[pin]; ok {
			return fmt.Errorf("pin collision: %s and %s both use line %d", prev, name, pin)
		}
		seen[pin] = name
	}

	return nil
}
