package savegame

import (
	"fmt"

	_ "github.com/lib/pq" // registers the postgres driver
)

// PostgresDialect implements Dialect for PostgreSQL databases.
type PostgresDialect struct{}

// DriverName returns "postgres" for the lib/pq driver.
func (d *PostgresDialect) DriverName() string {
	return "postgres"
}

// Placeholder returns "$N" for the given position (PostgreSQL uses numbered placeholders).
func (d *PostgresDialect) Placeholder(position int) string {
	return fmt.Sprintf("$%d", position)
}

// InitStatements returns no statements. PostgreSQL needs no PRAGMA
// equivalents; foreign keys are always enforced.
func (d *PostgresDialect) InitStatements() []string {
	return nil
}
