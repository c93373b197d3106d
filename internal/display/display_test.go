package display

import (
	"errors"
	"testing"
	"time"
)

func TestMutedPassesThrough(t *testing.T) {
	f := NewFake()
	m := NewMuted(f)

	m.ShowStatus("hello", 2*time.Second)
	m.SetPower(false)
	m.SetBrightness(0.5)

	if f.LastStatus() != "hello" {
		t.Errorf("status: got %q, want hello", f.LastStatus())
	}
	if f.Power {
		t.Error("power should be off")
	}
	if f.Brightness != 0.5 {
		t.Errorf("brightness: got %v, want 0.5", f.Brightness)
	}
	if m.Failed() {
		t.Error("should not be muted without an error")
	}
}

func TestMutedGoesHeadlessAfterFirstError(t *testing.T) {
	f := NewFake()
	f.Err = errors.New("i2c timeout")
	m := NewMuted(f)

	if err := m.ShowStatus("hello", time.Second); err != nil {
		t.Errorf("muted display must never surface errors, got %v", err)
	}
	if !m.Failed() {
		t.Fatal("expected mute after first error")
	}

	// Peripheral recovers, but the wrapper stays headless and never
	// touches it again.
	f.Err = nil
	m.ShowStatus("again", time.Second)
	m.SetPower(false)
	if len(f.Statuses) != 0 {
		t.Errorf("muted wrapper called through: %v", f.Statuses)
	}
	if f.PowerCalls != 0 {
		t.Error("muted wrapper called SetPower")
	}
}
