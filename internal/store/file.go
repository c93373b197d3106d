package store

import (
	"fmt"
	"os"
)

// OpenFile opens (creating if needed) the file-backed configuration
// region and sizes it to exactly RegionSize. os.File satisfies Device
// directly; WriteAt per field gives the same non-transactional behavior
// as the byte-addressed region it models.
func OpenFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return nil, fmt.Errorf("open config region %s: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat config region: %w", err)
	}
	if info.Size() != RegionSize {
		// A fresh or garbled file is sized up; truncation fills with
		// zero bytes, which reads back as "absent".
		if err := f.Truncate(RegionSize); err != nil {
			f.Close()
			return nil, fmt.Errorf("size config region: %w", err)
		}
	}

	return f, nil
}
