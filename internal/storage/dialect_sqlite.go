package storage

import (
	"fmt"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteDialect targets the modernc.org/sqlite driver.
type SQLiteDialect struct{}

func (d *SQLiteDialect) DriverName() string {
	return DriverSQLite
}

// Placeholder returns "?" for every position.
func (d *SQLiteDialect) Placeholder(int) string {
	return "?"
}

// InitStatements enables WAL and a busy timeout so SSH sessions sharing the
// file wait for locks instead of failing.
func (d *SQLiteDialect) InitStatements() []string {
	return []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
}

func (d *SQLiteDialect) TimestampType() string {
	return "DATETIME"
}

func (d *SQLiteDialect) PositiveInt(column string) string {
	return fmt.Sprintf("(%[1]s <> '' AND %[1]s NOT GLOB '*[^0-9]*' AND CAST(%[1]s AS INTEGER) > 0)", column)
}
