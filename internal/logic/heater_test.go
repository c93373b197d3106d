package logic

import "testing"

func TestManualRegimeFollowsComparisonEveryTick(t *testing.T) {
	c := NewControl(false)

	// Not armed: never on, whatever the temperature.
	c.Evaluate(40.0)
	if c.HeaterOn() {
		t.Error("heater must stay off while not armed")
	}

	c.ToggleArmed()
	if !c.Armed() {
		t.Fatal("expected armed after toggle")
	}

	// armed && temp < target (default 70), recomputed every tick,
	// no hysteresis: flips the instant the comparison flips.
	steps := []struct {
		temp float64
		on   bool
	}{
		{69.9, true},
		{70.0, false},
		{69.9, true},
		{70.0, false},
		{75.0, false},
		{50.0, true},
	}
	for i, st := range steps {
		c.Evaluate(st.temp)
		if c.HeaterOn() != st.on {
			t.Errorf("step %d (temp=%v): heaterOn=%v, want %v", i, st.temp, c.HeaterOn(), st.on)
		}
	}
}

func TestTargetAdjustClamps(t *testing.T) {
	c := NewControl(false)

	// Push past the ceiling.
	for i := 0; i < 50; i++ {
		c.AdjustTarget(+1)
	}
	if c.Target() != TargetMax {
		t.Errorf("target: got %v, want clamp at %v", c.Target(), TargetMax)
	}
	if anns := c.AdjustTarget(+1); anns != nil {
		t.Error("increment at max should be silent")
	}

	// Push past the floor.
	for i := 0; i < 50; i++ {
		c.AdjustTarget(-1)
	}
	if c.Target() != TargetMin {
		t.Errorf("target: got %v, want clamp at %v", c.Target(), TargetMin)
	}
	if anns := c.AdjustTarget(-1); anns != nil {
		t.Error("decrement at min should be silent")
	}
}

func TestFreezeGuardHysteresis(t *testing.T) {
	c := NewControl(true)

	// Reference sequence: 39.5 -> 37.0 -> 39.0 -> 41.0
	// yields (prev) -> true -> true -> false.
	c.Evaluate(39.5)
	if c.HeaterOn() {
		t.Error("39.5 in dead band with heater previously off: want off")
	}
	c.Evaluate(37.0)
	if !c.HeaterOn() {
		t.Error("37.0 < 38.0: want on")
	}
	c.Evaluate(39.0)
	if !c.HeaterOn() {
		t.Error("39.0 in dead band with heater on: want held on")
	}
	c.Evaluate(41.0)
	if c.HeaterOn() {
		t.Error("41.0 >= 40.0: want off")
	}
}

func TestFreezeGuardHoldsAcrossDeadBandOscillation(t *testing.T) {
	c := NewControl(true)
	c.Evaluate(37.0)

	for _, temp := range []float64{38.0, 39.9, 38.5, 39.0} {
		c.Evaluate(temp)
		if !c.HeaterOn() {
			t.Errorf("temp=%v inside [38,40): heater must hold on", temp)
		}
	}
}

func TestFreezeGuardIgnoresManualCommands(t *testing.T) {
	c := NewControl(false)
	c.ToggleArmed()
	for i := 0; i < 5; i++ {
		c.AdjustTarget(+1) // 75
	}

	c.SetFreezeGuard(true)

	if anns := c.AdjustTarget(+1); anns != nil {
		t.Error("target adjust must silently no-op under freeze guard")
	}
	if anns := c.ToggleArmed(); anns != nil {
		t.Error("arm toggle must silently no-op under freeze guard")
	}

	// Latch and target are ignored, not reset: leaving freeze guard
	// resumes manual behavior from where it was.
	c.SetFreezeGuard(false)
	if !c.Armed() {
		t.Error("armed latch must survive a freeze-guard round trip")
	}
	if c.Target() != 75.0 {
		t.Errorf("target: got %v, want 75 preserved", c.Target())
	}

	c.Evaluate(74.0)
	if !c.HeaterOn() {
		t.Error("manual regime should resume with preserved state")
	}
}

func TestAnnouncementsOnTransitions(t *testing.T) {
	c := NewControl(false)
	c.ToggleArmed()

	anns := c.Evaluate(60.0)
	if len(anns) != 1 {
		t.Fatalf("expected 1 announcement on heater transition, got %d", len(anns))
	}
	if anns[0].Text != "heater on" {
		t.Errorf("text: got %q, want \"heater on\"", anns[0].Text)
	}
	if anns[0].Duration != AnnounceDuration {
		t.Errorf("duration: got %v, want %v", anns[0].Duration, AnnounceDuration)
	}

	// No transition, no announcement.
	if anns := c.Evaluate(60.0); anns != nil {
		t.Errorf("expected no announcement without a transition, got %v", anns)
	}

	anns = c.AdjustTarget(+1)
	if len(anns) != 1 || anns[0].Text != "target 71" {
		t.Errorf("target announcement: got %v", anns)
	}

	anns = c.SetFreezeGuard(true)
	if len(anns) != 1 || anns[0].Text != "freeze guard on" {
		t.Errorf("regime announcement: got %v", anns)
	}
	if anns := c.SetFreezeGuard(true); anns != nil {
		t.Error("setting the regime it already has should be silent")
	}
}
