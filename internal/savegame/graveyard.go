package savegame

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cavernkeep/undercroft/internal/logger"
)

// ErrGraveNotFound is returned when a graveyard entry lookup fails.
var ErrGraveNotFound = errors.New("graveyard entry not found")

// GraveEntry is one finished run: who died, how deep they got, and
// what got them.
type GraveEntry struct {
	ID     string
	Name   string
	Depth  int
	Level  int
	Cause  string
	DiedAt time.Time
}

// RecordDeath appends a graveyard entry for the finished run and
// returns it. An empty cause is recorded as "unknown".
func (d *Database) RecordDeath(name string, depth, level int, cause string) (*GraveEntry, error) {
	if cause == "" {
		cause = "unknown"
	}

	entry := &GraveEntry{
		ID:     uuid.New().String(),
		Name:   name,
		Depth:  depth,
		Level:  level,
		Cause:  cause,
		DiedAt: time.Now(),
	}

	query := d.qb.Build(`
		INSERT INTO graveyard (id, name, depth, level, cause, died_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if _, err := d.db.Exec(query, entry.ID, entry.Name, entry.Depth, entry.Level, entry.Cause, entry.DiedAt); err != nil {
		return nil, fmt.Errorf("failed to record death: %w", err)
	}

	logger.Info("Death recorded", "name", name, "depth", depth, "level", level, "cause", cause)
	return entry, nil
}

// Graveyard returns every recorded death, most recent first.
func (d *Database) Graveyard() ([]GraveEntry, error) {
	rows, err := d.db.Query(`
		SELECT id, name, depth, level, cause, died_at
		FROM graveyard
		ORDER BY died_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query graveyard: %w", err)
	}
	defer rows.Close()

	var entries []GraveEntry
	for rows.Next() {
		var entry GraveEntry
		if err := rows.Scan(&entry.ID, &entry.Name, &entry.Depth, &entry.Level, &entry.Cause, &entry.DiedAt); err != nil {
			return nil, fmt.Errorf("failed to scan graveyard entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// DeleteGrave removes one graveyard entry by id.
func (d *Database) DeleteGrave(id string) error {
	query := d.qb.Build(`DELETE FROM graveyard WHERE id = ?`)

	result, err := d.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete graveyard entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrGraveNotFound
	}

	return nil
}
