package storage

import "strings"

// Dialect abstracts the SQL differences between SQLite and PostgreSQL.
type Dialect interface {
	// DriverName returns the driver name for sql.Open().
	DriverName() string

	// Placeholder returns the parameter placeholder for a 1-indexed position.
	Placeholder(position int) string

	// InitStatements run once after the connection is established.
	InitStatements() []string

	// TimestampType is the column type for update timestamps.
	TimestampType() string

	// PositiveInt returns a condition that holds when column is the text of
	// an integer >= 1. Casting the column is safe once it holds.
	PositiveInt(column string) string
}

// Driver names accepted by Config.Driver.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// NewDialect returns the dialect for a driver name. Unknown names get SQLite.
func NewDialect(driver string) Dialect {
	switch driver {
	case DriverPostgres:
		return &PostgresDialect{}
	default:
		return &SQLiteDialect{}
	}
}

// rebind converts ? placeholders to the dialect's form.
func rebind(d Dialect, query string) string {
	if _, ok := d.(*SQLiteDialect); ok {
		return query
	}

	var b strings.Builder
	position := 1
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			b.WriteString(d.Placeholder(position))
			position++
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}
