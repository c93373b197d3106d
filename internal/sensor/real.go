package sensor

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// IIO attribute files exposed by the hts221/sht4x family of drivers,
// both in milli-units.
const (
	tempAttr = "in_temp_input"
	humAttr  = "in_humidityrelative_input"
)

// RealReader reads an IIO temperature/humidity sensor through sysfs.
type RealReader struct {
	dir string
}

// NewRealReader verifies the device directory exists and returns a reader.
func NewRealReader(dir string) (*RealReader, error) {
	if _, err := os.Stat(filepath.Join(dir, tempAttr)); err != nil {
		return nil, fmt.Errorf("probe sensor %s: %w", dir, err)
	}
	return &RealReader{dir: dir}, nil
}

// Read returns the current temperature (°C) and relative humidity (%).
func (r *RealReader) Read() (float64, float64, error) {
	temp, err := r.readMilli(tempAttr)
	if err != nil {
		return 0, 0, fmt.Errorf("read temperature: %w", err)
	}
	hum, err := r.readMilli(humAttr)
	if err != nil {
		return 0, 0, fmt.Errorf("read humidity: %w", err)
	}
	return temp, hum, nil
}

func (r *RealReader) readMilli(attr string) (float64, error) {
	raw, err := os.ReadFile(filepath.Join(r.dir, attr))
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(string(raw)), 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", attr, err)
	}
	return v / 1000.0, nil
}

// Close releases sensor resources. Sysfs reads hold nothing open.
func (r *RealReader) Close() error {
	return nil
}
