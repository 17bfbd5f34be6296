package storage

import (
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresDialect targets the lib/pq driver.
type PostgresDialect struct{}

func (d *PostgresDialect) DriverName() string {
	return DriverPostgres
}

// Placeholder returns "$N".
func (d *PostgresDialect) Placeholder(position int) string {
	return fmt.Sprintf("$%d", position)
}

func (d *PostgresDialect) InitStatements() []string {
	return nil
}

func (d *PostgresDialect) TimestampType() string {
	return "TIMESTAMPTZ"
}

// PositiveInt bounds the digit count so the cast cannot overflow BIGINT.
func (d *PostgresDialect) PositiveInt(column string) string {
	return fmt.Sprintf("(%s ~ '^0*[1-9][0-9]{0,17}$')", column)
}
