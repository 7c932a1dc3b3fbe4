package database

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database owns the process's handle to the embedded SQLite store. It is
// constructed explicitly at startup and passed to the repositories; there is
// no module-level singleton. When the schema is upgraded by another connection
// the owner calls Reconnect, which closes the stale handle and opens a fresh
// one — in-flight callers holding the old handle observe ErrConnection.
type Database struct {
	mu     sync.RWMutex
	db     *gorm.DB
	path   string
	closed bool
}

// NewDatabase opens (creating if necessary) the database at dbPath and brings
// the schema up to the latest version. Upgrades only ever add collections and
// indexes; existing data is never dropped.
func NewDatabase(dbPath string) (*Database, error) {
	db, err := open(dbPath)
	if err != nil {
		return nil, err
	}

	d := &Database{db: db, path: dbPath}

	version, err := migrate(db)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized at %s (schema version %d)", dbPath, version)

	return d, nil
}

func open(dbPath string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Conn returns the live gorm handle for read operations, or ErrConnection if
// the handle has been closed or invalidated.
func (d *Database) Conn() (*gorm.DB, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed || d.db == nil {
		return nil, ErrConnection
	}
	return d.db, nil
}

// Path returns the filesystem path of the database file.
func (d *Database) Path() string {
	return d.path
}

// Transact runs fn inside a single transaction spanning every collection fn
// touches. This is the only place that drives the engine's transaction API:
// if fn returns an error the engine rolls back all of its writes and Transact
// reports the failure with uniform error semantics — domain error kinds pass
// through unchanged, anything else is surfaced as ErrTxAborted.
func (d *Database) Transact(fn func(tx *gorm.DB) error) error {
	db, err := d.Conn()
	if err != nil {
		return err
	}

	err = db.Transaction(fn)
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrValidation) || errors.Is(err, ErrConnection) {
		return err
	}
	return errors.Join(ErrTxAborted, err)
}

// Reconnect closes the current handle and opens a fresh one against the same
// path, re-running migrations. Call this when an external version change has
// invalidated the handle.
func (d *Database) Reconnect() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db != nil {
		if sqlDB, err := d.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Printf("Error closing stale database handle: %v", err)
			}
		}
		d.db = nil
	}
	d.closed = false

	db, err := open(d.path)
	if err != nil {
		d.closed = true
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	if _, err := migrate(db); err != nil {
		d.closed = true
		return fmt.Errorf("failed to migrate database on reconnect: %w", err)
	}

	d.db = db
	log.Printf("Database reconnected at %s", d.path)
	return nil
}

// Close releases the underlying handle. Subsequent repository calls return
// ErrConnection until Reconnect is called.
func (d *Database) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed || d.db == nil {
		return nil
	}
	d.closed = true

	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
