// Package store persists vault snapshots in Postgres.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/vaultboard/vaultboard/internal/vaults"
)

// DBTX is the subset of pgxpool.Pool the store uses.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Store struct {
	db DBTX
}

func New(db DBTX) *Store {
	return &Store{db: db}
}

const saveVaultsSQL = `
INSERT INTO vault_snapshots (chain_id, payload, vault_count, fetched_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (chain_id) DO UPDATE
SET payload = EXCLUDED.payload,
    vault_count = EXCLUDED.vault_count,
    fetched_at = EXCLUDED.fetched_at
WHERE vault_snapshots.fetched_at <= EXCLUDED.fetched_at`

const loadVaultsSQL = `
SELECT payload, fetched_at
FROM vault_snapshots
WHERE chain_id = $1`

// SaveVaults upserts the vault list of a chain. Older snapshots never
// overwrite newer ones.
func (s *Store) SaveVaults(ctx context.Context, chainID int, list []vaults.Vault, fetchedAt time.Time) error {
	if list == nil {
		list = []vaults.Vault{}
	}
	payload, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode vault snapshot: %w", err)
	}
	if _, err := s.db.Exec(ctx, saveVaultsSQL, chainID, payload, len(list), fetchedAt.UTC()); err != nil {
		return fmt.Errorf("save vault snapshot for chain %d: %w", chainID, err)
	}
	return nil
}

// LoadVaults returns the stored list of a chain. A chain without a
// snapshot yields a nil list and no error.
func (s *Store) LoadVaults(ctx context.Context, chainID int) ([]vaults.Vault, time.Time, error) {
	var (
		payload   []byte
		fetchedAt time.Time
	)
	err := s.db.QueryRow(ctx, loadVaultsSQL, chainID).Scan(&payload, &fetchedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("load vault snapshot for chain %d: %w", chainID, err)
	}

	var list []vaults.Vault
	if err := json.Unmarshal(payload, &list); err != nil {
		return nil, time.Time{}, fmt.Errorf("decode vault snapshot for chain %d: %w", chainID, err)
	}
	if list == nil {
		list = []vaults.Vault{}
	}
	return list, fetchedAt, nil
}
