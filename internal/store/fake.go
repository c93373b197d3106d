package store

import (
	"errors"
	"io"
)

// FakeDevice is an in-memory backing region for tests.
type FakeDevice struct {
	// Bytes is the raw region, RegionSize long.
	Bytes []byte

	// ReadError and WriteError, if set, fail the respective operation.
	ReadError  error
	WriteError error

	// Writes counts WriteAt calls, to assert on partial-write windows.
	Writes int
}

// NewFakeDevice creates a zeroed in-memory region.
func NewFakeDevice() *FakeDevice {
	return &FakeDevice{Bytes: make([]byte, RegionSize)}
}

// ReadAt implements Device.
func (f *FakeDevice) ReadAt(p []byte, off int64) (int, error) {
	if f.ReadError != nil {
		return 0, f.ReadError
	}
	if off < 0 || off >= int64(len(f.Bytes)) {
		return 0, errors.New("read out of range")
	}
	n := copy(p, f.Bytes[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// WriteAt implements Device.
func (f *FakeDevice) WriteAt(p []byte, off int64) (int, error) {
	if f.WriteError != nil {
		return 0, f.WriteError
	}
	if off < 0 || off+int64(len(p)) > int64(len(f.Bytes)) {
		return 0, errors.New("write out of range")
	}
	f.Writes++
	return copy(f.Bytes[off:], p), nil
}
