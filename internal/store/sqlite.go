package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/existflow/daymark/internal/model"
	_ "modernc.org/sqlite"
)

// Storage keys. Target date, excluded dates, and tasks are three
// independent entries, not a single document.
const (
	keyTargetDate    = "target_date"
	keyExcludedDates = "excluded_dates"
	keyTasks         = "tasks"
)

// SQLiteStore is the local persistence provider backed by a key-value table
type SQLiteStore struct {
	db *sql.DB
}

// DefaultDBPath returns the default database path (~/.daymark/daymark.db)
func DefaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".daymark", "daymark.db"), nil
}

// Open opens or creates the SQLite database
func Open(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &SQLiteStore{db: sqlDB}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return s, nil
}

// OpenDefault opens the store at the default path
func OpenDefault() (*SQLiteStore, error) {
	path, err := DefaultDBPath()
	if err != nil {
		return nil, err
	}
	return Open(path)
}

func (s *SQLiteStore) migrate() error {
	migrations := []string{
		migrationCreateAppState,
	}

	for i, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}

const migrationCreateAppState = `
CREATE TABLE IF NOT EXISTS app_state (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
`

// Load reads the three state entries and assembles the app data.
// Missing entries keep their defaults; found is false only when no
// entry exists at all.
func (s *SQLiteStore) Load() (model.AppData, bool, error) {
	data := model.NewAppData()
	found := false

	if raw, ok, err := s.get(keyTargetDate); err != nil {
		return data, false, err
	} else if ok {
		found = true
		var target time.Time
		if err := json.Unmarshal(raw, &target); err != nil {
			return data, false, fmt.Errorf("failed to parse target date: %w", err)
		}
		data.TargetDate = &target
	}

	if raw, ok, err := s.get(keyExcludedDates); err != nil {
		return data, false, err
	} else if ok {
		found = true
		migrated, err := model.MigrateAppData([]byte(fmt.Sprintf(`{"excludedDates":%s}`, raw)))
		if err != nil {
			return data, false, fmt.Errorf("failed to migrate excluded dates: %w", err)
		}
		var doc struct {
			ExcludedDates []model.ExcludedDate `json:"excludedDates"`
		}
		if err := json.Unmarshal(migrated, &doc); err != nil {
			return data, false, fmt.Errorf("failed to parse excluded dates: %w", err)
		}
		data.ExcludedDates = doc.ExcludedDates
	}

	if raw, ok, err := s.get(keyTasks); err != nil {
		return data, false, err
	} else if ok {
		found = true
		if err := json.Unmarshal(raw, &data.Tasks); err != nil {
			return data, false, fmt.Errorf("failed to parse tasks: %w", err)
		}
	}

	return data, found, nil
}

// Save writes all three entries in one transaction
func (s *SQLiteStore) Save(data model.AppData) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if data.TargetDate != nil {
		encoded, err := json.Marshal(data.TargetDate)
		if err != nil {
			return err
		}
		if err := setTx(tx, keyTargetDate, encoded); err != nil {
			return err
		}
	} else {
		if _, err := tx.Exec(`DELETE FROM app_state WHERE key = ?`, keyTargetDate); err != nil {
			return fmt.Errorf("failed to clear target date: %w", err)
		}
	}

	excluded, err := json.Marshal(data.ExcludedDates)
	if err != nil {
		return err
	}
	if err := setTx(tx, keyExcludedDates, excluded); err != nil {
		return err
	}

	tasks, err := json.Marshal(data.Tasks)
	if err != nil {
		return err
	}
	if err := setTx(tx, keyTasks, tasks); err != nil {
		return err
	}

	return tx.Commit()
}

// Reset deletes all stored state
func (s *SQLiteStore) Reset() error {
	if _, err := s.db.Exec(`DELETE FROM app_state`); err != nil {
		return fmt.Errorf("failed to reset state: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) get(key string) ([]byte, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM app_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return []byte(value), true, nil
}

func setTx(tx *sql.Tx, key string, value []byte) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := tx.Exec(`
		INSERT INTO app_state (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(value), now,
	)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
