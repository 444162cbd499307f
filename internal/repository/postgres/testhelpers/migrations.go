package testhelpers

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ApplyMigrations применяет все *.up.sql из каталога в лексикографическом порядке.
// Миграции написаны с IF NOT EXISTS, поэтому повторный запуск безопасен.
func ApplyMigrations(db *sql.DB, migrationsPath string) error {
	upFiles, err := filepath.Glob(filepath.Join(migrationsPath, "*.up.sql"))
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	if len(upFiles) == 0 {
		return fmt.Errorf("no migrations found in %s", migrationsPath)
	}
	sort.Strings(upFiles)

	for _, path := range upFiles {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", filepath.Base(path), err)
		}
		if strings.TrimSpace(string(content)) == "" {
			continue
		}
		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("apply migration %s: %w", filepath.Base(path), err)
		}
	}

	return nil
}
