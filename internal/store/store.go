// Package store persists the device configuration in a small
// byte-addressed region with a fixed layout:
//
//	offset  0, 32 bytes: network identity name, null-padded
//	offset 32, 64 bytes: network identity secret, null-padded
//	offset 96,  1 byte:  freeze-guard-enabled flag
//
// Absence is represented by zero bytes. Writes go field by field with no
// transactional guarantee: a power loss mid-write may leave a partially
// written identity. That is an accepted risk — the next boot sees garbled
// bytes and most likely re-enters provisioning.
package store

import (
	"bytes"
	"fmt"
)

// Region layout.
const (
	NameOffset = 0
	NameSize   = 32

	SecretOffset = 32
	SecretSize   = 64

	FreezeOffset = 96
	FreezeSize   = 1

	RegionSize = FreezeOffset + FreezeSize
)

// MinNameLen is the shortest identity name considered present; anything
// shorter means the device is unprovisioned.
const MinNameLen = 2

// Device is the byte-addressed backing region.
type Device interface {
	ReadAt(p []byte, off int64) (int, error)
	WriteAt(p []byte, off int64) (int, error)
}

// Store reads and writes the fixed-layout configuration over a Device.
type Store struct {
	dev Device
}

// New wraps a backing device.
func New(dev Device) *Store {
	return &Store{dev: dev}
}

// Identity returns the persisted network identity. Fields are cut at the
// first null byte.
func (s *Store) Identity() (name, secret string, err error) {
	n := make([]byte, NameSize)
	if _, err := s.dev.ReadAt(n, NameOffset); err != nil {
		return "", "", fmt.Errorf("read identity name: %w", err)
	}
	sec := make([]byte, SecretSize)
	if _, err := s.dev.ReadAt(sec, SecretOffset); err != nil {
		return "", "", fmt.Errorf("read identity secret: %w", err)
	}
	return cut(n), cut(sec), nil
}

// HasIdentity reports whether a usable identity is present: a name of at
// least MinNameLen bytes.
func (s *Store) HasIdentity() (bool, error) {
	name, _, err := s.Identity()
	if err != nil {
		return false, err
	}
	return len(name) >= MinNameLen, nil
}

// SaveIdentity persists the identity. Fields are truncated to their fixed
// sizes and null-padded. The two fields are written separately — there is
// no atomic commit across the record.
func (s *Store) SaveIdentity(name, secret string) error {
	if err := s.writeField(name, NameOffset, NameSize); err != nil {
		return fmt.Errorf("write identity name: %w", err)
	}
	if err := s.writeField(secret, SecretOffset, SecretSize); err != nil {
		return fmt.Errorf("write identity secret: %w", err)
	}
	return nil
}

// EraseIdentity zeroes both identity fields.
func (s *Store) EraseIdentity() error {
	return s.SaveIdentity("", "")
}

// FreezeGuard returns the persisted freeze-guard flag.
func (s *Store) FreezeGuard() (bool, error) {
	b := make([]byte, FreezeSize)
	if _, err := s.dev.ReadAt(b, FreezeOffset); err != nil {
		return false, fmt.Errorf("read freeze-guard flag: %w", err)
	}
	return b[0] != 0, nil
}

// SetFreezeGuard persists the freeze-guard flag.
func (s *Store) SetFreezeGuard(on bool) error {
	b := []byte{0}
	if on {
		b[0] = 1
	}
	if _, err := s.dev.WriteAt(b, FreezeOffset); err != nil {
		return fmt.Errorf("write freeze-guard flag: %w", err)
	}
	return nil
}

func (s *Store) writeField(v string, off int64, size int) error {
	b := make([]byte, size) // zeroed: truncate and null-pad
	copy(b, v)
	_, err := s.dev.WriteAt(b, off)
	return err
}

func cut(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
