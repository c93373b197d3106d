package logic

import "math"

// SmoothingSlots is the fixed size of each channel's ring buffer.
const SmoothingSlots = 10

// Reading is the result of one smoothing tick.
type Reading struct {
	// Temp is the rolling average temperature in display units (°F).
	// Only meaningful when TempValid is true.
	Temp      float64
	TempValid bool

	// Hum is the rolling average relative humidity in percent.
	Hum      float64
	HumValid bool
}

// channelBuffer is one channel's ring of recent values.
type channelBuffer struct {
	slots  [SmoothingSlots]float64
	seeded bool
}

// seed fills every slot with the first valid value so the average starts
// at the reading instead of being dragged toward zero.
func (c *channelBuffer) seed(v float64) {
	for i := range c.slots {
		c.slots[i] = v
	}
	c.seeded = true
}

func (c *channelBuffer) mean() float64 {
	var sum float64
	for _, v := range c.slots {
		sum += v
	}
	return sum / SmoothingSlots
}

// Smoother maintains rolling averages for the temperature and humidity
// channels. Both channels share a single write index that advances once
// per Sample call, so a faulting channel keeps its stale slot value while
// the healthy channel keeps updating.
type Smoother struct {
	temp channelBuffer
	hum  channelBuffer
	idx  int
}

// NewSmoother creates an unseeded Smoother. Until a channel has seen one
// valid raw value, its returned reading is flagged invalid.
func NewSmoother() *Smoother {
	return &Smoother{}
}

// CelsiusToDisplay converts a raw sensor temperature (°C) to display units.
func CelsiusToDisplay(c float64) float64 {
	return c*9.0/5.0 + 32.0
}

// Sample ingests one raw sensor reading and returns the current averages.
// A NaN raw value means the sensor faulted on that channel this tick: the
// slot at the current index is left untouched and the stale value stays in
// the average. The shared index advances exactly once per call.
func (s *Smoother) Sample(rawTempC, rawHum float64) Reading {
	if !math.IsNaN(rawTempC) {
		t := CelsiusToDisplay(rawTempC)
		if !s.temp.seeded {
			s.temp.seed(t)
		} else {
			s.temp.slots[s.idx] = t
		}
	}
	if !math.IsNaN(rawHum) {
		if !s.hum.seeded {
			s.hum.seed(rawHum)
		} else {
			s.hum.slots[s.idx] = rawHum
		}
	}

	s.idx = (s.idx + 1) % SmoothingSlots

	return s.Current()
}

// Current returns the averages without ingesting a new sample.
func (s *Smoother) Current() Reading {
	r := Reading{TempValid: s.temp.seeded, HumValid: s.hum.seeded}
	if s.temp.seeded {
		r.Temp = s.temp.mean()
	}
	if s.hum.seeded {
		r.Hum = s.hum.mean()
	}
	return r
}

// TempValid reports whether the temperature channel has ever seeded.
// False is the hard fault state surfaced to telemetry; a seeded channel
// running on stale slots is deliberately NOT treated as a fault.
func (s *Smoother) TempValid() bool {
	return s.temp.seeded
}

// HumValid reports whether the humidity channel has ever seeded.
func (s *Smoother) HumValid() bool {
	return s.hum.seeded
}
