// Package savegame persists crawl snapshots and the graveyard ledger
// to SQLite (default) or PostgreSQL.
package savegame

import (
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/blake2b"
	_ "modernc.org/sqlite"

	"github.com/cavernkeep/undercroft/internal/config"
	"github.com/cavernkeep/undercroft/internal/entity"
	"github.com/cavernkeep/undercroft/internal/game"
	"github.com/cavernkeep/undercroft/internal/logger"
	"github.com/cavernkeep/undercroft/internal/message"
)

// SchemaVersion is stamped into every save record. A record written
// under any other version is treated as absent rather than migrated;
// a crawl snapshot is not worth a migration framework.
const SchemaVersion = 1

// ErrNoSave is returned when a slot holds no usable save: missing,
// version-incompatible, corrupt, or truncated. Callers fall back to a
// fresh game.
var ErrNoSave = errors.New("no saved game")

// Snapshot is the single atomic record a save round-trips: the entity
// store and the world state, together or not at all.
type Snapshot struct {
	Store *entity.Store `json:"store"`
	State *game.State   `json:"state"`
}

// Database wraps the SQL connection and provides persistence operations.
type Database struct {
	db      *sql.DB
	dialect Dialect
	qb      *QueryBuilder
}

// Open connects to the configured backend and runs migrations. For
// SQLite the parent directory is created on demand; for PostgreSQL the
// DSN is used as-is with modest pool settings.
func Open(cfg config.StorageConfig) (*Database, error) {
	dialect := NewDialect(DialectType(cfg.Driver))

	dsn := cfg.DSN
	if _, ok := dialect.(*SQLiteDialect); ok {
		dir := filepath.Dir(cfg.Path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = cfg.Path
	}

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, ok := dialect.(*PostgresDialect); ok {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	for _, stmt := range dialect.InitStatements() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
	}

	d := &Database{db: db, dialect: dialect, qb: NewQueryBuilder(dialect)}

	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return d, nil
}

// Close closes the database connection.
func (d *Database) Close() error {
	return d.db.Close()
}

// migrate creates the schema if it doesn't exist.
func (d *Database) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS saves (
			slot TEXT PRIMARY KEY,
			version INTEGER NOT NULL,
			digest TEXT NOT NULL,
			payload TEXT NOT NULL,
			saved_at TIMESTAMP NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS graveyard (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			depth INTEGER NOT NULL,
			level INTEGER NOT NULL,
			cause TEXT NOT NULL,
			died_at TIMESTAMP NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_graveyard_died_at ON graveyard(died_at)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}

	return nil
}

// Save writes the snapshot into the named slot, replacing any previous
// record there. The payload digest is stored alongside so Load can
// reject a record that did not survive storage intact.
func (d *Database) Save(slot string, snap *Snapshot) error {
	if snap == nil || snap.Store == nil || snap.State == nil {
		return errors.New("incomplete snapshot")
	}

	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	query := d.qb.Build(`
		INSERT INTO saves (slot, version, digest, payload, saved_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (slot) DO UPDATE SET
			version = excluded.version,
			digest = excluded.digest,
			payload = excluded.payload,
			saved_at = excluded.saved_at
	`)
	if _, err := d.db.Exec(query, slot, SchemaVersion, digestOf(payload), string(payload), time.Now()); err != nil {
		return fmt.Errorf("failed to write save %q: %w", slot, err)
	}

	logger.Debug("Game saved", "slot", slot, "bytes", len(payload))
	return nil
}

// Load reads the named slot back into a snapshot. Every failure mode
// short of a backend error degrades to ErrNoSave; a bad record must
// never take the game down with it.
func (d *Database) Load(slot string) (*Snapshot, error) {
	query := d.qb.Build(`SELECT version, digest, payload FROM saves WHERE slot = ?`)

	var (
		version int
		digest  string
		payload string
	)
	err := d.db.QueryRow(query, slot).Scan(&version, &digest, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSave
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read save %q: %w", slot, err)
	}

	if version != SchemaVersion {
		logger.Warning("Ignoring save with incompatible version", "slot", slot, "version", version, "want", SchemaVersion)
		return nil, ErrNoSave
	}
	if digestOf([]byte(payload)) != digest {
		logger.Warning("Ignoring save with bad digest", "slot", slot)
		return nil, ErrNoSave
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		logger.Warning("Ignoring unreadable save", "slot", slot, "error", err)
		return nil, ErrNoSave
	}
	if snap.Store == nil || snap.State == nil || snap.State.Map == nil {
		logger.Warning("Ignoring incomplete save", "slot", slot)
		return nil, ErrNoSave
	}
	if snap.State.Log == nil {
		snap.State.Log = &message.Log{}
	}

	return &snap, nil
}

// Delete removes the named slot. Deleting an absent slot returns
// ErrNoSave.
func (d *Database) Delete(slot string) error {
	query := d.qb.Build(`DELETE FROM saves WHERE slot = ?`)

	result, err := d.db.Exec(query, slot)
	if err != nil {
		return fmt.Errorf("failed to delete save %q: %w", slot, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNoSave
	}

	return nil
}

// SaveInfo describes one stored slot without decoding its payload.
type SaveInfo struct {
	Slot    string
	Version int
	SavedAt time.Time
}

// List returns every stored slot, most recently written first.
func (d *Database) List() ([]SaveInfo, error) {
	rows, err := d.db.Query(`
		SELECT slot, version, saved_at
		FROM saves
		ORDER BY saved_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list saves: %w", err)
	}
	defer rows.Close()

	var saves []SaveInfo
	for rows.Next() {
		var info SaveInfo
		if err := rows.Scan(&info.Slot, &info.Version, &info.SavedAt); err != nil {
			return nil, fmt.Errorf("failed to scan save info: %w", err)
		}
		saves = append(saves, info)
	}
	return saves, rows.Err()
}

// digestOf returns the hex BLAKE2b-256 digest of the payload.
func digestOf(payload []byte) string {
	sum := blake2b.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
