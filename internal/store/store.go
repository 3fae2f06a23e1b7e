// Package store provides SQLite-backed device storage: auth credentials,
// one-time flags, and the last fetched group snapshots that back the
// stale-but-available display policy across runs.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/financeflow/finflow/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// FlagGuideCompleted is set once the first-run guide has been dismissed.
const FlagGuideCompleted = "user_guide_completed"

// Store is the on-device persistence layer.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening store db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveCredentials stores the auth token and user blob, replacing any
// previous session.
func (s *Store) SaveCredentials(token string, user model.Member) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encoding user: %w", err)
	}
	_, err = s.db.Exec(`INSERT OR REPLACE INTO credentials (id, token, user_json, saved_at)
		VALUES (1, ?, ?, ?)`,
		token, string(userJSON), time.Now().UTC().Format(time.RFC3339))
	return err
}

// Credentials returns the stored token and user. ok is false when no session
// has been saved.
func (s *Store) Credentials() (token string, user model.Member, ok bool, err error) {
	var userJSON string
	row := s.db.QueryRow("SELECT token, user_json FROM credentials WHERE id = 1")
	if err = row.Scan(&token, &userJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", model.Member{}, false, nil
		}
		return "", model.Member{}, false, err
	}
	if err = json.Unmarshal([]byte(userJSON), &user); err != nil {
		return "", model.Member{}, false, fmt.Errorf("decoding user: %w", err)
	}
	return token, user, true, nil
}

// ClearCredentials removes the stored session, e.g. on logout or 401.
func (s *Store) ClearCredentials() error {
	_, err := s.db.Exec("DELETE FROM credentials WHERE id = 1")
	return err
}

// SetFlag stores a boolean flag by name.
func (s *Store) SetFlag(name string, value bool) error {
	v := 0
	if value {
		v = 1
	}
	_, err := s.db.Exec("INSERT OR REPLACE INTO flags (name, value) VALUES (?, ?)", name, v)
	return err
}

// Flag reads a boolean flag; unset flags are false.
func (s *Store) Flag(name string) (bool, error) {
	var v int
	row := s.db.QueryRow("SELECT value FROM flags WHERE name = ?", name)
	if err := row.Scan(&v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return v != 0, nil
}

// SaveGroupSnapshot stores the last successfully fetched balances and ledger
// for a group.
func (s *Store) SaveGroupSnapshot(groupID string, balances []model.MemberBalance, ledger model.SettlementLedger) error {
	balancesJSON, err := json.Marshal(balances)
	if err != nil {
		return fmt.Errorf("encoding balances: %w", err)
	}
	ledgerJSON, err := json.Marshal(ledger)
	if err != nil {
		return fmt.Errorf("encoding ledger: %w", err)
	}
	_, err = s.db.Exec(`INSERT OR REPLACE INTO group_snapshots
		(group_id, balances_json, ledger_json, fetched_at) VALUES (?, ?, ?, ?)`,
		groupID, string(balancesJSON), string(ledgerJSON),
		time.Now().UTC().Format(time.RFC3339))
	return err
}

// GroupSnapshot returns the cached balances and ledger for a group. ok is
// false when nothing has been cached yet.
func (s *Store) GroupSnapshot(groupID string) (balances []model.MemberBalance, ledger model.SettlementLedger, fetchedAt time.Time, ok bool, err error) {
	var balancesJSON, ledgerJSON, fetchedStr string
	row := s.db.QueryRow(
		"SELECT balances_json, ledger_json, fetched_at FROM group_snapshots WHERE group_id = ?", groupID)
	if err = row.Scan(&balancesJSON, &ledgerJSON, &fetchedStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.SettlementLedger{}, time.Time{}, false, nil
		}
		return nil, model.SettlementLedger{}, time.Time{}, false, err
	}

	if err = json.Unmarshal([]byte(balancesJSON), &balances); err != nil {
		return nil, model.SettlementLedger{}, time.Time{}, false, fmt.Errorf("decoding balances: %w", err)
	}
	if err = json.Unmarshal([]byte(ledgerJSON), &ledger); err != nil {
		return nil, model.SettlementLedger{}, time.Time{}, false, fmt.Errorf("decoding ledger: %w", err)
	}
	if t, perr := time.Parse(time.RFC3339, fetchedStr); perr == nil {
		fetchedAt = t
	}
	return balances, ledger, fetchedAt, true, nil
}
