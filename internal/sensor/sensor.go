// Package sensor reads the temperature/humidity sensor with hardware
// abstraction. The real implementation reads a Linux IIO device through
// sysfs; the fake returns scripted samples.
package sensor

// Reader reads one raw sample from the sensor.
type Reader interface {
	// Read returns the raw temperature in °C and the relative humidity in
	// percent. A transport or conversion failure returns an error; the
	// caller treats a failed channel as an invalid (NaN) reading.
	Read() (tempC, humidity float64, err error)

	// Close releases sensor resources.
	Close() error
}

// DefaultDevice is the sysfs directory of the IIO sensor.
const DefaultDevice = "/sys/bus/iio/devices/iio:device0"

// Downed is a Reader for a sensor that could not be opened: every Read
// fails, so the control core reports a fault instead of fake values.
type Downed struct {
	// Err is the probe failure, returned by every Read.
	Err error
}

// Read always fails with the probe error.
func (d *Downed) Read() (float64, float64, error) {
	return 0, 0, d.Err
}

// Close does nothing; there is no device to release.
func (d *Downed) Close() error { return nil }
