// Command thermostat runs the single-board thermostat daemon: climate
// sampling, heater control, button input, provisioning, and the HTTP and
// MQTT surfaces.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/sweeney/thermostat/internal/buttons"
	"github.com/sweeney/thermostat/internal/config"
	"github.com/sweeney/thermostat/internal/device"
	"github.com/sweeney/thermostat/internal/display"
	"github.com/sweeney/thermostat/internal/mqtt"
	"github.com/sweeney/thermostat/internal/netlink"
	"github.com/sweeney/thermostat/internal/relay"
	"github.com/sweeney/thermostat/internal/sensor"
	"github.com/sweeney/thermostat/internal/status"
	"github.com/sweeney/thermostat/internal/store"
	"github.com/sweeney/thermostat/internal/web"
)

func main() {
	cfgPath := flag.String("config", "", "YAML config file (optional)")
	heartbeat := flag.Duration("heartbeat", 15*time.Minute, "Heartbeat interval (0 to disable)")
	flag.Parse()

	// .env feeds the THERMOSTAT_* overrides; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	config.ApplyEnv(&cfg)
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}

	if err := run(cfg, *heartbeat); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(cfg config.Config, heartbeat time.Duration) error {
	poll := time.Duration(cfg.PollMs) * time.Millisecond
	sample := time.Duration(cfg.SampleMs) * time.Millisecond

	// Persisted settings region
	dev, err := store.OpenFile(cfg.StorePath)
	if err != nil {
		return fmt.Errorf("open settings store: %w", err)
	}
	defer dev.Close()
	st := store.New(dev)

	// Hardware
	btns, err := buttons.NewRealReader(cfg.Pins.Up, cfg.Pins.Down)
	if err != nil {
		return fmt.Errorf("init buttons: %w", err)
	}
	defer btns.Close()

	heater, err := relay.NewRealDriver(cfg.Pins.Heater)
	if err != nil {
		return fmt.Errorf("init heater relay: %w", err)
	}
	defer heater.Close()

	var climate sensor.Reader
	climate, err = sensor.NewRealReader(cfg.SensorDevice)
	if err != nil {
		// Run anyway: every sample faults and telemetry reports the
		// null sentinel, which is more useful than refusing to boot.
		log.Printf("climate sensor unavailable, running faulted: %v", err)
		climate = &sensor.Downed{Err: err}
	}
	defer climate.Close()

	disp := display.NewMuted(display.NewLogger())

	// Status tracker (before STARTUP so the snapshot is available)
	tracker := status.NewTracker(time.Now(), status.Config{
		PollMs:   int64(cfg.PollMs),
		SampleMs: int64(cfg.SampleMs),
		Broker:   cfg.Broker,
		HTTPAddr: cfg.HTTPAddr,
		APName:   cfg.APName,
	})

	devCfg := device.DefaultConfig()
	devCfg.SampleInterval = sample
	devCfg.APName = cfg.APName

	mgr := device.NewManager(devCfg, device.Deps{
		Store:   st,
		Sensor:  climate,
		Buttons: btns,
		Heater:  heater,
		Display: disp,
		Net:     netlink.NewRealManager(cfg.WifiIface),
		Restart: &rebooter{},
		Tracker: tracker,
	})

	ctx := context.Background()
	if err := mgr.Boot(ctx, time.Now()); err != nil {
		return fmt.Errorf("boot: %w", err)
	}
	log.Printf("booted in %s mode", mgr.Mode())

	// MQTT (optional)
	var publisher mqtt.Publisher
	var connStatus mqtt.ConnectionStatus
	if cfg.Broker != "" {
		client, err := mqtt.NewRealClient(cfg.Broker, cfg.Token, mgr)
		if err != nil {
			return fmt.Errorf("init mqtt: %w", err)
		}
		defer client.Close()
		publisher = client
		connStatus = client

		tracker.SetMQTTConnected(client.IsConnected())
		snap := tracker.Snapshot()
		startup := mqtt.SystemEvent{
			Timestamp:  snap.Now,
			Event:      "STARTUP",
			Retained:   true,
			RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
		}
		if err := publisher.PublishSystem(startup); err != nil {
			log.Printf("failed to publish startup event: %v", err)
		} else {
			log.Printf("published startup event")
		}
	}

	// HTTP surface
	srv := web.New(cfg.HTTPAddr, tracker, mgr, cfg.Token)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("http server error: %v", err)
		}
	}()
	defer srv.Shutdown(context.Background())
	log.Printf("http server listening on %s", cfg.HTTPAddr)

	log.Printf("started: poll=%v sample=%v broker=%q heartbeat=%v", poll, sample, cfg.Broker, heartbeat)

	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(mgr, publisher, connStatus, tracker, sample, heartbeat, time.Now, ticker.C, sigCh)
}

// runLoop drives the manager at the poll cadence and pushes telemetry and
// heartbeats out over MQTT. It returns when a shutdown signal arrives.
func runLoop(mgr *device.Manager, publisher mqtt.Publisher, connStatus mqtt.ConnectionStatus, tracker *status.Tracker, telemetryEvery, heartbeat time.Duration, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	var lastTelemetry, lastHeartbeat time.Time

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			if publisher != nil {
				if connStatus != nil {
					tracker.SetMQTTConnected(connStatus.IsConnected())
				}
				snap := tracker.Snapshot()
				event := mqtt.SystemEvent{
					Timestamp:  snap.Now,
					Event:      "SHUTDOWN",
					Reason:     signalName(s),
					Retained:   true,
					RawPayload: status.FormatStatusEvent(snap, "SHUTDOWN", signalName(s)),
				}
				if err := publisher.PublishSystem(event); err != nil {
					log.Printf("failed to publish shutdown event: %v", err)
				} else {
					log.Printf("published shutdown event")
				}
			}
			return nil

		case <-tick:
			t := now()
			mgr.Tick(t)

			if connStatus != nil {
				tracker.SetMQTTConnected(connStatus.IsConnected())
			}

			if publisher != nil && t.Sub(lastTelemetry) >= telemetryEvery {
				lastTelemetry = t
				if err := publisher.PublishTelemetry(status.FormatJSON(tracker.Snapshot())); err != nil {
					log.Printf("telemetry publish error: %v", err)
				}
			}

			if publisher != nil && heartbeat > 0 && t.Sub(lastHeartbeat) >= heartbeat {
				if lastHeartbeat.IsZero() {
					// First tick only arms the timer.
					lastHeartbeat = t
					continue
				}
				lastHeartbeat = t
				snap := tracker.Snapshot()
				event := mqtt.SystemEvent{
					Timestamp:  snap.Now,
					Event:      "HEARTBEAT",
					RawPayload: status.FormatStatusEvent(snap, "HEARTBEAT", ""),
				}
				if err := publisher.PublishSystem(event); err != nil {
					log.Printf("heartbeat publish error: %v", err)
				}
			}
		}
	}
}

func signalName(s os.Signal) string {
	switch s {
	case syscall.SIGINT:
		return "SIGINT"
	case syscall.SIGTERM:
		return "SIGTERM"
	default:
		return "UNKNOWN"
	}
}

// rebooter restarts the board through systemd. The daemon unit is ordered
// so the heater relay is released by the deferred Close first.
type rebooter struct{}

func (*rebooter) Restart(reason string) {
	log.Printf("restarting device: %s", reason)
	if err := exec.Command("systemctl", "reboot").Run(); err != nil {
		log.Printf("reboot failed: %v", err)
	}
}
