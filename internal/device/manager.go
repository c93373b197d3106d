package device

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/sweeney/thermostat/internal/buttons"
	"github.com/sweeney/thermostat/internal/display"
	"github.com/sweeney/thermostat/internal/logic"
	"github.com/sweeney/thermostat/internal/netlink"
	"github.com/sweeney/thermostat/internal/relay"
	"github.com/sweeney/thermostat/internal/sensor"
	"github.com/sweeney/thermostat/internal/status"
	"github.com/sweeney/thermostat/internal/store"
)

// Deps are the collaborators the manager coordinates.
type Deps struct {
	Store   *store.Store
	Sensor  sensor.Reader
	Buttons buttons.Reader
	Heater  relay.Driver
	Display display.Display
	Net     netlink.Manager
	Restart Restarter
	Tracker *status.Tracker

	// Sleep is used for join-retry spacing at boot. Defaults to
	// time.Sleep; tests inject a recorder.
	Sleep func(time.Duration)
}

// Manager is the device-mode state machine. Boot decides the mode, then
// the owner calls Tick at the button poll cadence from a single goroutine.
type Manager struct {
	cfg  Config
	deps Deps

	mode     Mode
	smoother *logic.Smoother
	control  *logic.Control
	btracker *logic.ButtonTracker
	reading  logic.Reading

	displaySleeping bool
	brightness      float64
	lastActivity    time.Time

	lastSample  time.Time
	haveSampled bool
	warmupUntil time.Time
	warmupArmed bool

	// holdUntil stalls input processing and policy evaluation, preserving
	// the reference ordering of the blocking status holds. pendingRestart
	// fires when the hold expires; halted stops the machine afterwards.
	holdUntil      time.Time
	pendingRestart string
	halted         bool

	// identityTaken enforces the single provisioning submission.
	identityTaken bool

	relayOn  bool
	commands chan Command
}

// NewManager wires a manager. Boot must be called before Tick.
func NewManager(cfg Config, deps Deps) *Manager {
	if deps.Sleep == nil {
		deps.Sleep = time.Sleep
	}
	return &Manager{
		cfg:        cfg,
		deps:       deps,
		brightness: 1.0,
		commands:   make(chan Command, 16),
	}
}

// Mode returns the mode decided at boot. Stable after Boot returns.
func (m *Manager) Mode() Mode { return m.mode }

// Submit queues a command from an external surface. Never blocks the
// caller: a full queue drops the command with a log line.
func (m *Manager) Submit(cmd Command) {
	select {
	case m.commands <- cmd:
	default:
		log.Printf("command queue full, dropping %s", cmd.Kind)
	}
}

// Boot reads the persisted configuration and decides the device mode.
// With no usable identity it enters Provisioning; otherwise it attempts
// network association under the bounded retry budget and falls back to
// Provisioning on exhaustion.
func (m *Manager) Boot(ctx context.Context, now time.Time) error {
	has, err := m.deps.Store.HasIdentity()
	if err != nil {
		return fmt.Errorf("load persisted config: %w", err)
	}
	if !has {
		log.Printf("no network identity, entering provisioning")
		return m.enterProvisioning(ctx)
	}

	name, secret, err := m.deps.Store.Identity()
	if err != nil {
		return fmt.Errorf("load identity: %w", err)
	}

	for attempt := 1; attempt <= m.cfg.JoinAttempts; attempt++ {
		if err := m.deps.Net.Join(ctx, name, secret); err == nil {
			log.Printf("joined network %q (attempt %d)", name, attempt)
			return m.enterNormal(now)
		}
		if attempt < m.cfg.JoinAttempts {
			m.deps.Sleep(m.cfg.JoinSpacing)
		}
	}

	log.Printf("association failed after %d attempts, falling back to provisioning", m.cfg.JoinAttempts)
	return m.enterProvisioning(ctx)
}

func (m *Manager) enterProvisioning(ctx context.Context) error {
	m.mode = ModeProvisioning
	if err := m.deps.Net.StartAccessPoint(ctx, m.cfg.APName); err != nil {
		// Provisioning can still proceed over a wired interface.
		log.Printf("start access point: %v", err)
	}
	m.deps.Display.ShowStatus("join "+m.cfg.APName+" to configure", logic.AnnounceDuration)
	m.publish()
	return nil
}

func (m *Manager) enterNormal(now time.Time) error {
	freeze, err := m.deps.Store.FreezeGuard()
	if err != nil {
		log.Printf("read freeze-guard flag: %v (defaulting off)", err)
		freeze = false
	}

	m.mode = ModeNormal
	m.smoother = logic.NewSmoother()
	m.control = logic.NewControl(freeze)
	m.btracker = logic.NewButtonTracker()
	m.displaySleeping = false
	m.lastActivity = now
	m.deps.Display.SetPower(true)
	m.publish()
	return nil
}

// Tick runs one control loop iteration: pending restart, hold window,
// queued commands, buttons, sensor sampling, inactivity, heater policy.
// Must be called from a single goroutine.
func (m *Manager) Tick(now time.Time) {
	if m.halted {
		return
	}

	if m.pendingRestart != "" {
		if !now.Before(m.holdUntil) {
			m.halted = true
			m.deps.Restart.Restart(m.pendingRestart)
		}
		return
	}

	if now.Before(m.holdUntil) {
		// Status hold: nothing else may observe effects in this window.
		return
	}

	m.drainCommands(now)
	if m.pendingRestart != "" || now.Before(m.holdUntil) {
		return
	}

	if m.mode != ModeNormal {
		m.publish()
		return
	}

	m.tickButtons(now)
	if m.pendingRestart != "" {
		// A reset gesture opened a status hold; nothing else runs.
		return
	}
	m.tickSensor(now)
	m.tickInactivity(now)
	m.tickPolicy(now)
	m.publish()
}

func (m *Manager) drainCommands(now time.Time) {
	for {
		select {
		case cmd := <-m.commands:
			m.apply(cmd, now)
			if m.pendingRestart != "" || now.Before(m.holdUntil) {
				return
			}
		default:
			return
		}
	}
}

func (m *Manager) apply(cmd Command, now time.Time) {
	switch cmd.Kind {
	case CmdAdjustTarget:
		if m.control != nil {
			m.announce(m.control.AdjustTarget(cmd.Delta))
		}

	case CmdToggleArmed:
		if m.control != nil {
			m.announce(m.control.ToggleArmed())
		}

	case CmdSetDisplayPower:
		if cmd.Level <= 0 {
			m.sleepDisplay()
			return
		}
		if cmd.Level > 1 {
			cmd.Level = 1
		}
		// A remote wake is activity: without this the inactivity check
		// re-sleeps the display on the same tick once the timeout is past.
		m.lastActivity = now
		m.wakeDisplay()
		m.brightness = cmd.Level
		m.deps.Display.SetBrightness(m.brightness)

	case CmdSubmitIdentity:
		if m.identityTaken {
			log.Printf("identity already submitted, ignoring")
			return
		}
		if err := m.deps.Store.SaveIdentity(cmd.Name, cmd.Secret); err != nil {
			log.Printf("persist identity: %v", err)
			return
		}
		m.identityTaken = true
		m.deps.Display.ShowStatus("settings saved", m.cfg.SavedHold)
		m.scheduleRestart("provisioned", m.cfg.SavedHold, now)

	case CmdFactoryReset:
		if err := m.deps.Store.EraseIdentity(); err != nil {
			log.Printf("erase identity: %v", err)
		}
		m.deps.Display.ShowStatus("factory reset", m.cfg.ResetHold)
		m.scheduleRestart("factory-reset", m.cfg.ResetHold, now)

	case CmdSetFreezeGuard:
		if err := m.deps.Store.SetFreezeGuard(cmd.Enabled); err != nil {
			log.Printf("persist freeze-guard flag: %v", err)
		}
		if m.control != nil {
			m.announce(m.control.SetFreezeGuard(cmd.Enabled))
		}

	default:
		log.Printf("unknown command %q", cmd.Kind)
	}
}

func (m *Manager) tickButtons(now time.Time) {
	up, down, err := m.deps.Buttons.Read()
	if err != nil {
		log.Printf("button read error: %v", err)
		return
	}

	events := m.btracker.Process(logic.ButtonInput{
		Up:              up,
		Down:            down,
		Time:            now,
		DisplaySleeping: m.displaySleeping,
	})

	for _, e := range events {
		m.lastActivity = now
		switch e.Type {
		case logic.EventTargetUp:
			m.announce(m.control.AdjustTarget(+1))
		case logic.EventTargetDown:
			m.announce(m.control.AdjustTarget(-1))
		case logic.EventToggleArmed:
			m.announce(m.control.ToggleArmed())
		case logic.EventToggleFreezeGuard:
			next := !m.control.FreezeGuard()
			if err := m.deps.Store.SetFreezeGuard(next); err != nil {
				log.Printf("persist freeze-guard flag: %v", err)
			}
			m.announce(m.control.SetFreezeGuard(next))
		case logic.EventSleep:
			m.sleepDisplay()
		case logic.EventWifiReset:
			if err := m.deps.Store.EraseIdentity(); err != nil {
				log.Printf("erase identity: %v", err)
			}
			m.deps.Display.ShowStatus("wifi reset", m.cfg.ResetHold)
			m.scheduleRestart("wifi-reset", m.cfg.ResetHold, now)
			return
		case logic.EventWake:
			m.wakeDisplay()
			m.deps.Display.ShowStatus("wake", logic.AnnounceDuration)
		}
	}
}

func (m *Manager) tickSensor(now time.Time) {
	if m.haveSampled && now.Sub(m.lastSample) < m.cfg.SampleInterval {
		return
	}
	m.lastSample = now
	m.haveSampled = true

	tempC, hum, err := m.deps.Sensor.Read()
	if err != nil {
		log.Printf("sensor read error: %v", err)
		tempC, hum = math.NaN(), math.NaN()
	}
	m.reading = m.smoother.Sample(tempC, hum)

	if m.reading.TempValid && !m.warmupArmed {
		m.warmupArmed = true
		m.warmupUntil = now.Add(m.cfg.WarmupDelay)
	}
}

func (m *Manager) tickInactivity(now time.Time) {
	if m.displaySleeping {
		return
	}
	if now.Sub(m.lastActivity) >= m.cfg.InactivityTimeout {
		m.sleepDisplay()
	}
}

func (m *Manager) tickPolicy(now time.Time) {
	// The heater waits for a seeded smoother plus the warm-up delay;
	// after that it runs every tick, display sleep included.
	if !m.reading.TempValid || !m.warmupArmed || now.Before(m.warmupUntil) {
		return
	}

	m.announce(m.control.Evaluate(m.reading.Temp))

	if on := m.control.HeaterOn(); on != m.relayOn {
		if err := m.deps.Heater.Set(on); err != nil {
			// Keep relayOn stale so the transition retries next tick.
			log.Printf("heater relay error: %v", err)
			return
		}
		m.relayOn = on
	}
}

func (m *Manager) sleepDisplay() {
	if m.displaySleeping {
		return
	}
	m.displaySleeping = true
	m.deps.Display.SetPower(false)
}

func (m *Manager) wakeDisplay() {
	if !m.displaySleeping {
		return
	}
	m.displaySleeping = false
	m.deps.Display.SetPower(true)
}

func (m *Manager) scheduleRestart(reason string, hold time.Duration, now time.Time) {
	m.pendingRestart = reason
	m.holdUntil = now.Add(hold)
}

func (m *Manager) announce(anns []logic.Announcement) {
	for _, a := range anns {
		m.deps.Display.ShowStatus(a.Text, a.Duration)
	}
}

func (m *Manager) publish() {
	if m.deps.Tracker == nil {
		return
	}

	s := status.State{
		Mode:            string(m.mode),
		DisplaySleeping: m.displaySleeping,
		Brightness:      m.brightness,
	}
	if m.mode == ModeNormal && m.control != nil {
		s.Temp = m.reading.Temp
		s.TempValid = m.reading.TempValid
		s.Hum = m.reading.Hum
		s.HumValid = m.reading.HumValid
		s.Target = m.control.Target()
		s.HeaterOn = m.control.HeaterOn()
		s.Armed = m.control.Armed()
		s.FreezeGuard = m.control.FreezeGuard()
	}
	m.deps.Tracker.Update(s)
}
