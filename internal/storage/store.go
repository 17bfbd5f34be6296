// Package storage persists climb progress as profile-scoped key-value pairs.
// SQLite (pure Go, modernc.org/sqlite) is the default backend; PostgreSQL is
// available through lib/pq for shared SSH deployments.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

// Backend is implemented by every store.
type Backend interface {
	Get(profile, key string) (string, bool, error)
	Set(profile, key, value string) error
	SetMax(profile, key string, value int) error
	Remove(profile, key string) error
	Lookup(key string) (map[string]string, error)
	Close() error
}

// Store is a SQL-backed key-value store. It is safe for concurrent use.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	return OpenWithConfig(DefaultConfig(dbPath))
}

// OpenWithConfig opens the backend described by cfg and runs migrations.
func OpenWithConfig(cfg Config) (*Store, error) {
	if cfg.Driver == "" {
		cfg.Driver = DriverSQLite
	}

	var source string
	switch cfg.Driver {
	case DriverSQLite:
		path, err := prepareSQLitePath(cfg.Path)
		if err != nil {
			return nil, err
		}
		source = path
	case DriverPostgres:
		if cfg.DSN == "" {
			return nil, errors.New("storage: postgres driver requires a DSN")
		}
		source = cfg.DSN
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", cfg.Driver)
	}

	dialect := NewDialect(cfg.Driver)
	db, err := sql.Open(dialect.DriverName(), source)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if cfg.Driver == DriverSQLite {
		// One writer; pragmas are per connection.
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	for _, stmt := range dialect.InitStatements() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("storage: init %q: %w", stmt, err)
		}
	}

	store := &Store{db: db, dialect: dialect}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// prepareSQLitePath expands ~ and creates the parent directory.
func prepareSQLitePath(dbPath string) (string, error) {
	if dbPath == "" {
		dbPath = DefaultDBPath
	}

	if dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}
	return dbPath, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS progress_kv (
			profile TEXT NOT NULL,
			name TEXT NOT NULL,
			value TEXT NOT NULL,
			updated_at %s DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (profile, name)
		)`, s.dialect.TimestampType())

	_, err := s.db.Exec(schema)
	return err
}

// Driver returns the driver name of the open backend.
func (s *Store) Driver() string {
	return s.dialect.DriverName()
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get returns the value of key in profile. ok is false when the key is absent.
func (s *Store) Get(profile, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(
		rebind(s.dialect, "SELECT value FROM progress_kv WHERE profile = ? AND name = ?"),
		profile, key,
	).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot read %s/%s: %w", profile, key, err)
	}
	return value, true, nil
}

// Set stores value under key in profile, replacing any previous value.
func (s *Store) Set(profile, key, value string) error {
	_, err := s.db.Exec(
		rebind(s.dialect, `INSERT INTO progress_kv (profile, name, value) VALUES (?, ?, ?)
		 ON CONFLICT (profile, name) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`),
		profile, key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write %s/%s: %w", profile, key, err)
	}
	return nil
}

// SetMax stores value under key unless the stored value is already a positive
// integer >= value. The compare and the write are one statement, so sessions
// sharing a profile cannot lower each other's value.
func (s *Store) SetMax(profile, key string, value int) error {
	query := fmt.Sprintf(`INSERT INTO progress_kv (profile, name, value) VALUES (?, ?, ?)
		 ON CONFLICT (profile, name) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
		 WHERE CASE WHEN %s THEN CAST(progress_kv.value AS BIGINT) < CAST(excluded.value AS BIGINT) ELSE TRUE END`,
		s.dialect.PositiveInt("progress_kv.value"))

	if _, err := s.db.Exec(rebind(s.dialect, query), profile, key, strconv.Itoa(value)); err != nil {
		return fmt.Errorf("storage: cannot raise %s/%s: %w", profile, key, err)
	}
	return nil
}

// Remove deletes key from profile. Removing a missing key is not an error.
func (s *Store) Remove(profile, key string) error {
	_, err := s.db.Exec(
		rebind(s.dialect, "DELETE FROM progress_kv WHERE profile = ? AND name = ?"),
		profile, key,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot remove %s/%s: %w", profile, key, err)
	}
	return nil
}

// Lookup returns the value of key for every profile that has it.
func (s *Store) Lookup(key string) (map[string]string, error) {
	rows, err := s.db.Query(
		rebind(s.dialect, "SELECT profile, value FROM progress_kv WHERE name = ? ORDER BY profile"),
		key,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query %s: %w", key, err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var profile, value string
		if err := rows.Scan(&profile, &value); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		values[profile] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return values, nil
}

// Profiles returns the sorted profile names of a Lookup result.
func Profiles(values map[string]string) []string {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Namespace is a Backend view scoped to one profile. It satisfies the
// progression key-value contract.
type Namespace struct {
	backend Backend
	profile string
}

// Profile returns the view of b for one profile. An empty name selects
// DefaultProfile.
func Profile(b Backend, name string) *Namespace {
	if name == "" {
		name = DefaultProfile
	}
	return &Namespace{backend: b, profile: name}
}

// Name returns the profile name.
func (n *Namespace) Name() string {
	return n.profile
}

func (n *Namespace) Get(key string) (string, bool, error) {
	return n.backend.Get(n.profile, key)
}

func (n *Namespace) Set(key, value string) error {
	return n.backend.Set(n.profile, key, value)
}

func (n *Namespace) SetMax(key string, value int) error {
	return n.backend.SetMax(n.profile, key, value)
}

func (n *Namespace) Remove(key string) error {
	return n.backend.Remove(n.profile, key)
}

var (
	_ Backend = (*Store)(nil)
	_ Backend = (*Memory)(nil)
)
