package store

import (
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/hutch/pkg/eeprom"
)

// pageSize is the granularity of SQLite-backed storage. Pages absent
// from the table read as erased bytes.
const pageSize = 64

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS pages (
	page INTEGER PRIMARY KEY,
	data BLOB NOT NULL
);
`

// SQLite stores the byte image as fixed-size pages in a SQLite
// database, so a host that already ships sqlite can keep the object
// definitions in the same file as its other state.
type SQLite struct {
	mu   sync.Mutex
	db   *sql.DB
	size eeprom.Offset
}

// OpenSQLite opens or creates the database at path with the given
// capacity. The capacity recorded at creation wins over a differing
// size argument on later opens.
func OpenSQLite(path string, size eeprom.Offset) (*SQLite, error) {
	if size <= 0 {
		return nil, fmt.Errorf("open sqlite store %s: %w", path, eeprom.ErrOutOfRange)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init sqlite store schema: %w", err)
	}

	var stored int64
	err = db.QueryRow(`SELECT value FROM meta WHERE key = 'size'`).Scan(&stored)
	switch {
	case err == sql.ErrNoRows:
		if _, err := db.Exec(`INSERT INTO meta (key, value) VALUES ('size', ?)`, int64(size)); err != nil {
			db.Close()
			return nil, fmt.Errorf("record sqlite store size: %w", err)
		}
	case err != nil:
		db.Close()
		return nil, fmt.Errorf("read sqlite store size: %w", err)
	default:
		size = eeprom.Offset(stored)
	}

	return &SQLite{db: db, size: size}, nil
}

// ReadAt assembles p from the stored pages; missing pages read erased.
func (s *SQLite) ReadAt(p []byte, off eeprom.Offset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return eeprom.ErrClosed
	}
	if off < 0 || eeprom.Offset(int(off)+len(p)) > s.size {
		return eeprom.ErrOutOfRange
	}
	for i := range p {
		p[i] = eeprom.Erased
	}
	if len(p) == 0 {
		return nil
	}

	first := int(off) / pageSize
	last := (int(off) + len(p) - 1) / pageSize
	rows, err := s.db.Query(`SELECT page, data FROM pages WHERE page BETWEEN ? AND ?`, first, last)
	if err != nil {
		return fmt.Errorf("read sqlite store pages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var page int
		var data []byte
		if err := rows.Scan(&page, &data); err != nil {
			return fmt.Errorf("scan sqlite store page: %w", err)
		}
		pageOff := page * pageSize
		for i, b := range data {
			idx := pageOff + i - int(off)
			if idx >= 0 && idx < len(p) {
				p[idx] = b
			}
		}
	}
	return rows.Err()
}

// WriteAt read-modify-writes the touched pages inside one transaction.
func (s *SQLite) WriteAt(p []byte, off eeprom.Offset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return eeprom.ErrClosed
	}
	if off < 0 || eeprom.Offset(int(off)+len(p)) > s.size {
		return eeprom.ErrOutOfRange
	}
	if len(p) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin sqlite store write: %w", err)
	}
	defer tx.Rollback()

	first := int(off) / pageSize
	last := (int(off) + len(p) - 1) / pageSize
	for page := first; page <= last; page++ {
		data := make([]byte, pageSize)
		for i := range data {
			data[i] = eeprom.Erased
		}
		var existing []byte
		err := tx.QueryRow(`SELECT data FROM pages WHERE page = ?`, page).Scan(&existing)
		if err != nil && err != sql.ErrNoRows {
			return fmt.Errorf("read sqlite store page %d: %w", page, err)
		}
		copy(data, existing)

		pageOff := page * pageSize
		for i := range data {
			idx := pageOff + i - int(off)
			if idx >= 0 && idx < len(p) {
				data[i] = p[idx]
			}
		}
		if _, err := tx.Exec(
			`INSERT INTO pages (page, data) VALUES (?, ?)
			 ON CONFLICT(page) DO UPDATE SET data = excluded.data`, page, data); err != nil {
			return fmt.Errorf("write sqlite store page %d: %w", page, err)
		}
	}
	return tx.Commit()
}

// Size returns the capacity in bytes.
func (s *SQLite) Size() eeprom.Offset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.size
}

// Close releases the database handle. Idempotent.
func (s *SQLite) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	db := s.db
	s.db = nil
	return db.Close()
}
