package logic

import "time"

// ButtonTracker classifies two momentary buttons into short-press,
// long-press, and dual-button escalation events.
//
// Precedence for overlapping holds is deterministic: dual-button
// escalation wins. While both buttons are held, per-button long-press
// evaluation is suspended entirely; it resumes (against the button's own
// press start) only once the other button is released.
type ButtonTracker struct {
	up   buttonState
	down buttonState

	// Dual-hold latches, cleared when the hold ends.
	sleepFired bool
	wifiFired  bool

	// settleUntil suppresses all classification after a wake so the waking
	// press cannot also register as a short or long press.
	settleUntil time.Time
}

// NewButtonTracker creates a tracker with both buttons released.
func NewButtonTracker() *ButtonTracker {
	return &ButtonTracker{}
}

// Process takes one tick's button levels and returns any classified events.
func (t *ButtonTracker) Process(in ButtonInput) []ButtonEvent {
	now := in.Time

	if now.Before(t.settleUntil) {
		// Settle window: levels track the hardware, nothing classifies.
		t.absorb(in)
		return nil
	}

	if in.DisplaySleeping {
		return t.processSleeping(in)
	}

	var events []ButtonEvent

	if e := t.edge(&t.up, in.Up, now, EventTargetUp); e != nil {
		events = append(events, *e)
	}
	if e := t.edge(&t.down, in.Down, now, EventTargetDown); e != nil {
		events = append(events, *e)
	}

	if !(t.up.pressed && t.down.pressed) {
		t.sleepFired = false
		t.wifiFired = false

		if e := t.longPress(&t.up, now, EventToggleArmed); e != nil {
			events = append(events, *e)
		}
		if e := t.longPress(&t.down, now, EventToggleFreezeGuard); e != nil {
			events = append(events, *e)
		}
		return events
	}

	// Both held: evaluate escalation against the shorter of the two holds.
	held := t.dualHeld(now)
	switch {
	case held >= WifiReset:
		if !t.wifiFired {
			t.wifiFired = true
			events = append(events, ButtonEvent{Timestamp: now, Type: EventWifiReset})
		}
	case held >= SleepPress:
		if !t.sleepFired {
			t.sleepFired = true
			events = append(events, ButtonEvent{Timestamp: now, Type: EventSleep})
		}
	}
	return events
}

// processSleeping handles input while the display is asleep. A fresh press
// edge wakes the display and starts the settle window; an ongoing dual hold
// (the one that caused the sleep) keeps escalating toward the identity
// reset threshold; everything else is absorbed silently.
func (t *ButtonTracker) processSleeping(in ButtonInput) []ButtonEvent {
	now := in.Time

	if (!t.up.pressed && in.Up) || (!t.down.pressed && in.Down) {
		t.absorb(in)
		t.settleUntil = now.Add(WakeSettle)
		return []ButtonEvent{{Timestamp: now, Type: EventWake}}
	}

	if in.Up && in.Down && t.up.pressed && t.down.pressed {
		if t.dualHeld(now) >= WifiReset && !t.wifiFired {
			t.wifiFired = true
			return []ButtonEvent{{Timestamp: now, Type: EventWifiReset}}
		}
		return nil
	}

	t.absorb(in)
	t.sleepFired = false
	t.wifiFired = false
	return nil
}

// edge handles one button's press/release transitions. A release before
// the long-press threshold emits the button's short-press event.
func (t *ButtonTracker) edge(b *buttonState, level bool, now time.Time, short ButtonEventType) *ButtonEvent {
	switch {
	case !b.pressed && level:
		b.pressed = true
		b.pressStart = now
		b.longFired = false
	case b.pressed && !level:
		b.pressed = false
		if !b.longFired && now.Sub(b.pressStart) < LongPress {
			return &ButtonEvent{Timestamp: now, Type: short}
		}
	}
	return nil
}

// longPress fires exactly once per hold, latched by longFired.
func (t *ButtonTracker) longPress(b *buttonState, now time.Time, typ ButtonEventType) *ButtonEvent {
	if b.pressed && !b.longFired && now.Sub(b.pressStart) >= LongPress {
		b.longFired = true
		return &ButtonEvent{Timestamp: now, Type: typ}
	}
	return nil
}

// dualHeld returns how long both buttons have been down simultaneously,
// measured from each button's own press start.
func (t *ButtonTracker) dualHeld(now time.Time) time.Duration {
	held := now.Sub(t.up.pressStart)
	if d := now.Sub(t.down.pressStart); d < held {
		held = d
	}
	return held
}

// absorb syncs stored levels to the hardware without classifying. Held
// buttons get their longFired latch set so an absorbed press can never
// later fire a long press against a stale start time.
func (t *ButtonTracker) absorb(in ButtonInput) {
	t.up.pressed = in.Up
	t.up.longFired = in.Up
	t.down.pressed = in.Down
	t.down.longFired = in.Down
}
