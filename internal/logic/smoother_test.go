package logic

import (
	"math"
	"testing"
)

func TestSmootherSeedsOnFirstValidSample(t *testing.T) {
	s := NewSmoother()

	if s.TempValid() || s.HumValid() {
		t.Fatal("fresh smoother should not be valid")
	}

	r := s.Sample(20.0, 50.0) // 20°C = 68°F
	if !r.TempValid || !r.HumValid {
		t.Fatal("expected both channels valid after first sample")
	}
	if r.Temp != 68.0 {
		t.Errorf("Temp: got %v, want 68 (seeded with first reading)", r.Temp)
	}
	if r.Hum != 50.0 {
		t.Errorf("Hum: got %v, want 50", r.Hum)
	}
}

func TestSmootherRollingAverage(t *testing.T) {
	s := NewSmoother()
	s.Sample(20.0, 50.0) // seeds all 10 slots with 68°F / 50%

	// One slot replaced: mean = (9*68 + 86) / 10
	r := s.Sample(30.0, 50.0) // 30°C = 86°F
	want := (9*68.0 + 86.0) / 10.0
	if math.Abs(r.Temp-want) > 1e-9 {
		t.Errorf("Temp: got %v, want %v", r.Temp, want)
	}
}

func TestSmootherFaultRetainsStaleSlot(t *testing.T) {
	s := NewSmoother()
	s.Sample(20.0, 50.0)

	// Sensor fault: slot untouched, average unchanged, channel stays valid.
	r := s.Sample(math.NaN(), math.NaN())
	if !r.TempValid || !r.HumValid {
		t.Error("seeded channels must stay valid across faults")
	}
	if r.Temp != 68.0 {
		t.Errorf("Temp after fault: got %v, want 68", r.Temp)
	}
	if r.Hum != 50.0 {
		t.Errorf("Hum after fault: got %v, want 50", r.Hum)
	}
}

func TestSmootherNeverSeededIsHardFault(t *testing.T) {
	s := NewSmoother()

	r := s.Sample(math.NaN(), math.NaN())
	if r.TempValid || r.HumValid {
		t.Error("channels must be invalid until a valid reading arrives")
	}
}

func TestSmootherChannelsSeedIndependently(t *testing.T) {
	s := NewSmoother()

	r := s.Sample(math.NaN(), 55.0)
	if r.TempValid {
		t.Error("temperature should not be valid yet")
	}
	if !r.HumValid || r.Hum != 55.0 {
		t.Errorf("humidity: got (%v, %v), want (55, valid)", r.Hum, r.HumValid)
	}

	r = s.Sample(20.0, 55.0)
	if !r.TempValid || r.Temp != 68.0 {
		t.Errorf("temperature after late seed: got (%v, %v), want (68, valid)", r.Temp, r.TempValid)
	}
}

func TestSmootherSharedIndexAdvancesOncePerTick(t *testing.T) {
	s := NewSmoother()
	s.Sample(20.0, 50.0) // idx 0 seeds, idx -> 1

	// Temp faults, humidity updates slot 1. Index advances once for both.
	r := s.Sample(math.NaN(), 60.0)
	if hum := (9*50.0 + 60.0) / 10.0; math.Abs(r.Hum-hum) > 1e-9 {
		t.Errorf("Hum: got %v, want %v", r.Hum, hum)
	}
	if r.Temp != 68.0 {
		t.Errorf("Temp: got %v, want stale 68", r.Temp)
	}

	// Temp recovers at slot 2; its slot 1 still holds the seeded value.
	r = s.Sample(25.0, math.NaN()) // 25°C = 77°F
	if temp := (9*68.0 + 77.0) / 10.0; math.Abs(r.Temp-temp) > 1e-9 {
		t.Errorf("Temp after recovery: got %v, want %v", r.Temp, temp)
	}
}

func TestSmootherWindowWrapsAfterTenSamples(t *testing.T) {
	s := NewSmoother()
	s.Sample(0.0, 0.0) // 32°F everywhere

	// Nine more samples of 10°C (50°F) fill slots 1..9.
	for i := 0; i < 9; i++ {
		s.Sample(10.0, 10.0)
	}
	// Next write wraps to slot 0 and evicts the seeded value.
	r := s.Sample(10.0, 10.0)
	if r.Temp != 50.0 {
		t.Errorf("Temp after full wrap: got %v, want 50", r.Temp)
	}
	if r.Hum != 10.0 {
		t.Errorf("Hum after full wrap: got %v, want 10", r.Hum)
	}
}

func TestCelsiusToDisplay(t *testing.T) {
	cases := []struct{ c, f float64 }{
		{0, 32},
		{100, 212},
		{-40, -40},
		{20, 68},
	}
	for _, tc := range cases {
		if got := CelsiusToDisplay(tc.c); math.Abs(got-tc.f) > 1e-9 {
			t.Errorf("CelsiusToDisplay(%v): got %v, want %v", tc.c, got, tc.f)
		}
	}
}
