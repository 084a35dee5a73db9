package store

import (
	"fmt"
	"os"
	"sync"

	"github.com/mesh-intelligence/hutch/pkg/eeprom"
)

// File is a byte store backed by a fixed-size image file. Writes go
// straight to the file; there is no write-ahead log, so an interrupted
// write can leave a partial block (the journal scan tolerates this).
type File struct {
	mu   sync.RWMutex
	f    *os.File
	size eeprom.Offset
}

// OpenFile opens or creates the image at path with the given capacity.
// A new or short image is extended and filled with erased bytes; an
// existing larger image keeps its stated size.
func OpenFile(path string, size eeprom.Offset) (*File, error) {
	if size <= 0 {
		return nil, fmt.Errorf("open store image %s: %w", path, eeprom.ErrOutOfRange)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open store image: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat store image: %w", err)
	}
	if info.Size() < int64(size) {
		erased := make([]byte, int64(size)-info.Size())
		for i := range erased {
			erased[i] = eeprom.Erased
		}
		if _, err := f.WriteAt(erased, info.Size()); err != nil {
			f.Close()
			return nil, fmt.Errorf("extend store image: %w", err)
		}
	} else if info.Size() > int64(size) {
		size = eeprom.Offset(info.Size())
	}
	return &File{f: f, size: size}, nil
}

// ReadAt fills p from the image at off.
func (s *File) ReadAt(p []byte, off eeprom.Offset) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.f == nil {
		return eeprom.ErrClosed
	}
	if off < 0 || eeprom.Offset(int(off)+len(p)) > s.size {
		return eeprom.ErrOutOfRange
	}
	if _, err := s.f.ReadAt(p, int64(off)); err != nil {
		return fmt.Errorf("read store image: %w", err)
	}
	return nil
}

// WriteAt writes p to the image at off.
func (s *File) WriteAt(p []byte, off eeprom.Offset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return eeprom.ErrClosed
	}
	if off < 0 || eeprom.Offset(int(off)+len(p)) > s.size {
		return eeprom.ErrOutOfRange
	}
	if _, err := s.f.WriteAt(p, int64(off)); err != nil {
		return fmt.Errorf("write store image: %w", err)
	}
	return nil
}

// Size returns the capacity in bytes.
func (s *File) Size() eeprom.Offset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.size
}

// Close syncs and closes the image file. Idempotent.
func (s *File) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return nil
	}
	f := s.f
	s.f = nil
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("sync store image: %w", err)
	}
	return f.Close()
}
