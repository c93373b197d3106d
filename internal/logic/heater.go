package logic

import "fmt"

// Control owns the heater actuation decision. It is a pure function of its
// own state and the smoothed temperature, reevaluated every tick; it has no
// recoverable-error path. Nothing outside this type may set heaterOn.
type Control struct {
	regime   Regime
	armed    bool
	heaterOn bool
	target   float64
}

// NewControl creates a Control in the Manual regime with the default
// target, or in FreezeGuard when the persisted flag says so.
func NewControl(freezeGuard bool) *Control {
	c := &Control{
		regime: RegimeManual,
		target: DefaultTarget,
	}
	if freezeGuard {
		c.regime = RegimeFreezeGuard
	}
	return c
}

// Evaluate recomputes heaterOn from the smoothed temperature and returns
// announcements for any transition.
//
// Manual: heaterOn = armed && temp < target, with no hysteresis — the
// heater flips the instant the comparison flips, every tick.
//
// FreezeGuard: on below FreezeOnBelow, off at or above FreezeOffAt, and in
// the dead band between them the previous heaterOn holds unchanged. The
// armed latch and target are ignored, not reset.
func (c *Control) Evaluate(temp float64) []Announcement {
	prev := c.heaterOn

	switch c.regime {
	case RegimeFreezeGuard:
		if temp < FreezeOnBelow {
			c.heaterOn = true
		} else if temp >= FreezeOffAt {
			c.heaterOn = false
		}
		// Dead band: hold previous state.
	default:
		c.heaterOn = c.armed && temp < c.target
	}

	if c.heaterOn != prev {
		return []Announcement{announce(heaterText(c.heaterOn))}
	}
	return nil
}

// AdjustTarget moves the manual target by delta whole degrees, clamped to
// [TargetMin, TargetMax]. Silently ignored while FreezeGuard is active.
func (c *Control) AdjustTarget(delta int) []Announcement {
	if c.regime == RegimeFreezeGuard {
		return nil
	}
	t := c.target + float64(delta)
	if t < TargetMin {
		t = TargetMin
	}
	if t > TargetMax {
		t = TargetMax
	}
	if t == c.target {
		return nil
	}
	c.target = t
	return []Announcement{announce(fmt.Sprintf("target %.0f", c.target))}
}

// ToggleArmed flips the manual latch. Silently ignored while FreezeGuard
// is active.
func (c *Control) ToggleArmed() []Announcement {
	if c.regime == RegimeFreezeGuard {
		return nil
	}
	c.armed = !c.armed
	if c.armed {
		return []Announcement{announce("heat armed")}
	}
	return []Announcement{announce("heat off")}
}

// SetFreezeGuard switches the regime. The armed latch and target survive a
// round trip through FreezeGuard untouched, so leaving it resumes Manual
// behavior from wherever the user left it. The caller persists the flag.
func (c *Control) SetFreezeGuard(on bool) []Announcement {
	want := RegimeManual
	if on {
		want = RegimeFreezeGuard
	}
	if c.regime == want {
		return nil
	}
	c.regime = want
	if on {
		return []Announcement{announce("freeze guard on")}
	}
	return []Announcement{announce("freeze guard off")}
}

// HeaterOn reports the current actuation decision.
func (c *Control) HeaterOn() bool { return c.heaterOn }

// Armed reports the manual latch.
func (c *Control) Armed() bool { return c.armed }

// Target reports the manual target temperature.
func (c *Control) Target() float64 { return c.target }

// CurrentRegime reports which policy is active.
func (c *Control) CurrentRegime() Regime { return c.regime }

// FreezeGuard reports whether the FreezeGuard regime is active.
func (c *Control) FreezeGuard() bool { return c.regime == RegimeFreezeGuard }

func announce(text string) Announcement {
	return Announcement{Text: text, Duration: AnnounceDuration}
}

func heaterText(on bool) string {
	if on {
		return "heater on"
	}
	return "heater off"
}
