// Package migrator applies the SQL migrations under migrations/ with golang-migrate.
package migrator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/clickhouse"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// New creates a migrator reading migration files from dir.
func New(dir, dsn string) (*migrate.Migrate, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve migrations dir: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat migrations dir %s: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", abs)
	}

	sourceURL := fmt.Sprintf("file://%s", filepath.ToSlash(abs))
	m, err := migrate.New(sourceURL, dsn)
	if err != nil {
		return nil, fmt.Errorf("init migrate: %w", err)
	}
	return m, nil
}

// Up applies every pending migration. It reports whether anything was applied.
func Up(dir, dsn string) (applied bool, err error) {
	m, err := New(dir, dsn)
	if err != nil {
		return false, err
	}
	defer func() {
		if closeErr := Close(m); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if err = m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return false, nil
		}
		return false, fmt.Errorf("migrate up: %w", err)
	}
	return true, nil
}

// Down reverts every applied migration.
func Down(dir, dsn string) (err error) {
	m, err := New(dir, dsn)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := Close(m); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if err = m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}

func Close(m *migrate.Migrate) error {
	if m == nil {
		return nil
	}
	sourceErr, dbErr := m.Close()
	if sourceErr != nil && dbErr != nil {
		return fmt.Errorf("close migrator: source: %v; database: %v", sourceErr, dbErr)
	}
	if sourceErr != nil {
		return fmt.Errorf("close migrator: source: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("close migrator: database: %w", dbErr)
	}
	return nil
}

// WithMultiStatement enables multi statement files for the ClickHouse driver.
func WithMultiStatement(dsn string) string {
	if strings.Contains(dsn, "x-multi-statement=") {
		return dsn
	}
	separator := "?"
	if strings.Contains(dsn, "?") {
		separator = "&"
	}
	return dsn + separator + "x-multi-statement=true"
}

// ModuleDir returns a path below the directory holding go.mod, searching upward
// from the working directory.
func ModuleDir(elem ...string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working dir: %w", err)
	}

	for {
		if _, statErr := os.Stat(filepath.Join(dir, "go.mod")); statErr == nil {
			return filepath.Join(append([]string{dir}, elem...)...), nil
		}
		next := filepath.Dir(dir)
		if next == dir {
			return "", fmt.Errorf("go.mod not found from %s", dir)
		}
		dir = next
	}
}
