package sensor

import (
	"errors"
	"math"
)

// FakeReader is a test double that returns scripted sensor samples.
type FakeReader struct {
	// Samples contains scripted readings. Each call to Read() consumes
	// the next sample; the last sample repeats once exhausted.
	Samples []Sample

	// index tracks current position in Samples
	index int

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by Read()
	ReadError error
}

// Sample is one scripted sensor reading. Fault simulates a sensor that
// responds but returns garbage (surfaced as an error from Read).
type Sample struct {
	TempC float64
	Hum   float64
	Fault bool
}

// Faulted is a convenience constructor for a faulting sample.
func Faulted() Sample {
	return Sample{TempC: math.NaN(), Hum: math.NaN(), Fault: true}
}

// NewFakeReader creates a FakeReader with the given samples.
func NewFakeReader(samples []Sample) *FakeReader {
	return &FakeReader{Samples: samples}
}

// Read returns the next scripted sample.
func (f *FakeReader) Read() (float64, float64, error) {
	if f.ReadError != nil {
		return 0, 0, f.ReadError
	}

	if len(f.Samples) == 0 {
		return 0, 0, errors.New("no samples configured")
	}

	sample := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}

	if sample.Fault {
		return 0, 0, errors.New("sensor fault")
	}
	return sample.TempC, sample.Hum, nil
}

// Close marks the reader as closed.
func (f *FakeReader) Close() error {
	f.Closed = true
	return nil
}

// Reset rewinds the reader to the beginning of samples.
func (f *FakeReader) Reset() {
	f.index = 0
	f.Closed = false
}
