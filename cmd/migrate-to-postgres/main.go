// migrate-to-postgres migrates save data from SQLite to PostgreSQL.
//
// Usage:
//
//	go run ./cmd/migrate-to-postgres \
//	    -sqlite data/undercroft.db \
//	    -pg-host localhost \
//	    -pg-port 5432 \
//	    -pg-user undercroft \
//	    -pg-password undercroft \
//	    -pg-database undercroft
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

func main() {
	// Parse command-line flags
	sqlitePath := flag.String("sqlite", "data/undercroft.db", "Path to SQLite database")
	pgHost := flag.String("pg-host", "localhost", "PostgreSQL host")
	pgPort := flag.Int("pg-port", 5432, "PostgreSQL port")
	pgUser := flag.String("pg-user", "undercroft", "PostgreSQL user")
	pgPassword := flag.String("pg-password", "undercroft", "PostgreSQL password")
	pgDatabase := flag.String("pg-database", "undercroft", "PostgreSQL database name")
	pgSSLMode := flag.String("pg-sslmode", "disable", "PostgreSQL SSL mode")
	dryRun := flag.Bool("dry-run", false, "Show what would be migrated without making changes")
	flag.Parse()

	log.Println("SQLite to PostgreSQL Migration Tool")
	log.Println("====================================")

	// Open SQLite database
	log.Printf("Opening SQLite database: %s", *sqlitePath)
	sqliteDB, err := sql.Open("sqlite", *sqlitePath)
	if err != nil {
		log.Fatalf("Failed to open SQLite database: %v", err)
	}
	defer sqliteDB.Close()

	// Verify SQLite connection
	if err := sqliteDB.Ping(); err != nil {
		log.Fatalf("Failed to connect to SQLite database: %v", err)
	}

	// Build PostgreSQL connection string
	pgConnStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		*pgHost, *pgPort, *pgUser, *pgPassword, *pgDatabase, *pgSSLMode,
	)

	// Open PostgreSQL database
	log.Printf("Opening PostgreSQL database: %s@%s:%d/%s", *pgUser, *pgHost, *pgPort, *pgDatabase)
	pgDB, err := sql.Open("postgres", pgConnStr)
	if err != nil {
		log.Fatalf("Failed to open PostgreSQL database: %v", err)
	}
	defer pgDB.Close()

	// Verify PostgreSQL connection
	if err := pgDB.Ping(); err != nil {
		log.Fatalf("Failed to connect to PostgreSQL database: %v", err)
	}

	if *dryRun {
		log.Println("DRY RUN MODE - No changes will be made")
	}

	// Ensure the PostgreSQL schema exists before copying rows
	log.Println("Ensuring PostgreSQL schema is ready...")
	if !*dryRun {
		if err := migratePostgres(pgDB); err != nil {
			log.Fatalf("Failed to migrate PostgreSQL schema: %v", err)
		}
	}

	// Migrate each table
	tables := []struct {
		name    string
		migrate func(*sql.DB, *sql.DB, bool) (int64, error)
	}{
		{"saves", migrateSaves},
		{"graveyard", migrateGraveyard},
	}

	var totalRows int64
	for _, t := range tables {
		log.Printf("Migrating table: %s", t.name)
		count, err := t.migrate(sqliteDB, pgDB, *dryRun)
		if err != nil {
			log.Fatalf("Failed to migrate %s: %v", t.name, err)
		}
		log.Printf("  Migrated %d rows", count)
		totalRows += count
	}

	log.Println("====================================")
	log.Printf("Migration complete! Total rows migrated: %d", totalRows)
	if *dryRun {
		log.Println("(DRY RUN - No actual changes were made)")
	}
}

func migratePostgres(db *sql.DB) error {
	// Both tables carry TEXT primary keys, so there are no sequences
	// to repair after inserting with explicit IDs.
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
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}

	return nil
}

func migrateSaves(sqlite, pg *sql.DB, dryRun bool) (int64, error) {
	rows, err := sqlite.Query(`SELECT slot, version, digest, payload, saved_at FROM saves`)
	if err != nil {
		if strings.Contains(err.Error(), "no such table") {
			return 0, nil
		}
		return 0, err
	}
	defer rows.Close()

	var count int64
	for rows.Next() {
		var slot, digest, payload string
		var version int
		var savedAt string

		if err := rows.Scan(&slot, &version, &digest, &payload, &savedAt); err != nil {
			return count, err
		}

		if dryRun {
			count++
			continue
		}

		// Check if the slot already exists
		var existing string
		err := pg.QueryRow(`SELECT slot FROM saves WHERE slot = $1`, slot).Scan(&existing)
		if err == nil {
			continue
		}

		_, err = pg.Exec(`
			INSERT INTO saves (slot, version, digest, payload, saved_at)
			VALUES ($1, $2, $3, $4, $5)
		`, slot, version, digest, payload, parseTime(savedAt))
		if err != nil {
			if !strings.Contains(err.Error(), "duplicate key") {
				return count, err
			}
		} else {
			count++
		}
	}

	return count, rows.Err()
}

func migrateGraveyard(sqlite, pg *sql.DB, dryRun bool) (int64, error) {
	rows, err := sqlite.Query(`SELECT id, name, depth, level, cause, died_at FROM graveyard`)
	if err != nil {
		if strings.Contains(err.Error(), "no such table") {
			return 0, nil
		}
		return 0, err
	}
	defer rows.Close()

	var count int64
	for rows.Next() {
		var id, name, cause string
		var depth, level int
		var diedAt string

		if err := rows.Scan(&id, &name, &depth, &level, &cause, &diedAt); err != nil {
			return count, err
		}

		if dryRun {
			count++
			continue
		}

		var existing string
		err := pg.QueryRow(`SELECT id FROM graveyard WHERE id = $1`, id).Scan(&existing)
		if err == nil {
			continue
		}

		_, err = pg.Exec(`
			INSERT INTO graveyard (id, name, depth, level, cause, died_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, id, name, depth, level, cause, parseTime(diedAt))
		if err != nil {
			if !strings.Contains(err.Error(), "duplicate key") {
				return count, err
			}
		} else {
			count++
		}
	}

	return count, rows.Err()
}

// parseTime handles the timestamp formats the SQLite driver emits.
func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	formats := []string{
		"2006-01-02 15:04:05.999999999-07:00",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05Z",
		"2006-01-02T15:04:05-07:00",
		time.RFC3339,
		time.RFC3339Nano,
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return &t
		}
	}
	log.Printf("Warning: Could not parse time: %s", s)
	return nil
}

func init() {
	// Custom usage message
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Migrates save slots and the graveyard from SQLite to PostgreSQL.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s -sqlite data/undercroft.db -pg-host localhost -pg-user undercroft -pg-password undercroft -pg-database undercroft\n", os.Args[0])
	}
}
