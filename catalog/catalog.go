// Package catalog keeps a local SQLite record of accepted generation
// runs so repeated seeds, digests and export locations can be looked up
// later without re-running the generator.
package catalog

import (
	"crypto/sha256"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"ash-diver/generation"
)

// Catalog is a synchronous wrapper around the run database. Generation
// is single-threaded, so there is no writer goroutine here.
type Catalog struct {
	db *sql.DB
}

// Run is one recorded generation run.
type Run struct {
	ID         int64
	Seed       int64
	Zone       string
	Width      int
	Height     int
	Attempt    int
	Digest     string
	ExportPath string
	RecordedAt string
}

// Open opens (or creates) the run catalog at path.
func Open(path string) (*Catalog, error) {
	if path == "" {
		return nil, fmt.Errorf("empty catalog path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Catalog{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	// WAL keeps appends cheap; NORMAL durability is fine for a local
	// bookkeeping database that can always be rebuilt.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		seed INTEGER NOT NULL,
		zone TEXT NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		attempt INTEGER NOT NULL,
		digest TEXT NOT NULL,
		export_path TEXT NOT NULL,
		recorded_at TEXT NOT NULL
	);`)
	return err
}

// Digest hashes the tile grid row-major so identical layouts always get
// the same digest regardless of markers or export format.
func Digest(result *generation.Result) string {
	h := sha256.New()
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(result.Grid.Width))
	h.Write(buf[:])
	binary.LittleEndian.PutUint32(buf[:], uint32(result.Grid.Height))
	h.Write(buf[:])
	for y := 0; y < result.Grid.Height; y++ {
		for x := 0; x < result.Grid.Width; x++ {
			binary.LittleEndian.PutUint32(buf[:], uint32(result.Grid.Tiles[y][x]))
			h.Write(buf[:])
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Record inserts one accepted run into the catalog.
func (c *Catalog) Record(result *generation.Result, exportPath string) (int64, error) {
	res, err := c.db.Exec(
		`INSERT INTO runs (seed, zone, width, height, attempt, digest, export_path, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		result.Seed, string(result.Zone), result.Grid.Width, result.Grid.Height,
		result.Attempt, Digest(result), exportPath,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Recent returns the newest n runs, newest first.
func (c *Catalog) Recent(n int) ([]Run, error) {
	rows, err := c.db.Query(
		`SELECT id, seed, zone, width, height, attempt, digest, export_path, recorded_at
		 FROM runs ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Seed, &r.Zone, &r.Width, &r.Height,
			&r.Attempt, &r.Digest, &r.ExportPath, &r.RecordedAt); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Close closes the underlying database.
func (c *Catalog) Close() error {
	return c.db.Close()
}
