// Package store persists scenarios and caches simulation results in SQLite.
// Results are keyed on a fingerprint of the scenario input, so an unchanged
// scenario replays from cache instead of resimulating; the engine's
// fixed-seed determinism is what makes the cached value authoritative.
package store

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hearthfi/hearth/internal/domain"
	"github.com/hearthfi/hearth/internal/montecarlo"
)

// ErrNotFound is returned when a scenario id does not exist.
var ErrNotFound = errors.New("not found")

// Store is a SQLite-backed scenario and result repository.
type Store struct {
	db *sql.DB
}

// Open creates a store at path, migrating the schema if needed. Use
// ":memory:" for tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS scenarios (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		document TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS simulations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		scenario_id INTEGER NOT NULL REFERENCES scenarios(id) ON DELETE CASCADE,
		fingerprint TEXT NOT NULL,
		result TEXT NOT NULL,
		created_at TEXT NOT NULL,
		UNIQUE(scenario_id, fingerprint)
	);

	CREATE INDEX IF NOT EXISTS idx_simulations_fingerprint
		ON simulations(scenario_id, fingerprint);
	`
	_, err := s.db.Exec(schema)
	return err
}

// StoredScenario is a persisted scenario row.
type StoredScenario struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Scenario  domain.Scenario `json:"scenario"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// SaveScenario inserts or updates a scenario by name and returns its id.
func (s *Store) SaveScenario(scen *domain.Scenario) (int64, error) {
	doc, err := json.Marshal(scen)
	if err != nil {
		return 0, fmt.Errorf("failed to encode scenario: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339)

	res, err := s.db.Exec(`
		INSERT INTO scenarios (name, document, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET document = excluded.document, updated_at = excluded.updated_at`,
		scen.Name, string(doc), now, now)
	if err != nil {
		return 0, fmt.Errorf("failed to save scenario: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil && id > 0 {
		return id, nil
	}

	var id int64
	err = s.db.QueryRow(`SELECT id FROM scenarios WHERE name = ?`, scen.Name).Scan(&id)
	return id, err
}

// GetScenario loads one scenario by id.
func (s *Store) GetScenario(id int64) (*StoredScenario, error) {
	row := s.db.QueryRow(`SELECT id, name, document, created_at, updated_at FROM scenarios WHERE id = ?`, id)
	return scanScenario(row)
}

// ListScenarios returns every stored scenario, newest first.
func (s *Store) ListScenarios() ([]StoredScenario, error) {
	rows, err := s.db.Query(`SELECT id, name, document, created_at, updated_at FROM scenarios ORDER BY updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StoredScenario
	for rows.Next() {
		sc, err := scanScenario(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *sc)
	}
	return out, rows.Err()
}

// DeleteScenario removes a scenario and its cached simulations.
func (s *Store) DeleteScenario(id int64) error {
	res, err := s.db.Exec(`DELETE FROM scenarios WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanScenario(row rowScanner) (*StoredScenario, error) {
	var (
		sc                   StoredScenario
		doc                  string
		createdAt, updatedAt string
	)
	if err := row.Scan(&sc.ID, &sc.Name, &doc, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal([]byte(doc), &sc.Scenario); err != nil {
		return nil, fmt.Errorf("failed to decode scenario %d: %w", sc.ID, err)
	}
	sc.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	sc.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &sc, nil
}

// Fingerprint hashes the canonical encoding of a scenario. Any input change
// produces a new fingerprint and so a cache miss.
func Fingerprint(scen *domain.Scenario) (string, error) {
	doc, err := json.Marshal(scen)
	if err != nil {
		return "", fmt.Errorf("failed to encode scenario: %w", err)
	}
	sum := sha256.Sum256(doc)
	return hex.EncodeToString(sum[:]), nil
}

// CachedResult returns the stored result for (scenario, fingerprint), or
// (nil, nil) on a cache miss.
func (s *Store) CachedResult(scenarioID int64, fingerprint string) (*montecarlo.Result, error) {
	var doc string
	err := s.db.QueryRow(`SELECT result FROM simulations WHERE scenario_id = ? AND fingerprint = ?`,
		scenarioID, fingerprint).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var result montecarlo.Result
	if err := json.Unmarshal([]byte(doc), &result); err != nil {
		return nil, fmt.Errorf("failed to decode cached result: %w", err)
	}
	return &result, nil
}

// SaveResult caches a result under the scenario's fingerprint, replacing any
// stale entry for the same inputs.
func (s *Store) SaveResult(scenarioID int64, fingerprint string, result *montecarlo.Result) error {
	doc, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO simulations (scenario_id, fingerprint, result, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(scenario_id, fingerprint) DO UPDATE SET result = excluded.result, created_at = excluded.created_at`,
		scenarioID, fingerprint, string(doc), time.Now().UTC().Format(time.RFC3339))
	return err
}
