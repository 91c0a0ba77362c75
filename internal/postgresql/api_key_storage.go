package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"exchange-rates/internal"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type APIKeyStorage struct {
	pool *pgxpool.Pool
}

func NewAPIKeyStorage(pool *pgxpool.Pool) *APIKeyStorage {
	return &APIKeyStorage{pool: pool}
}

func (s *APIKeyStorage) FindByHash(ctx context.Context, hash string) (*internal.APIKey, error) {
	key := internal.APIKey{Hash: hash}
	var expiresAt *time.Time

	err := s.pool.QueryRow(ctx, `
select is_active, expires_at
from api_keys
where key_hash = $1;
`, hash).Scan(&key.Active, &expiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select api_keys: %w", err)
	}

	if expiresAt != nil {
		t := expiresAt.UTC()
		key.ExpiresAt = &t
	}
	return &key, nil
}

// Insert stores the digest of a new key. A nil expiresAt never expires.
func (s *APIKeyStorage) Insert(ctx context.Context, hash string, expiresAt *time.Time) error {
	_, err := s.pool.Exec(ctx, `
insert into api_keys (key_hash, is_active, expires_at)
values ($1, true, $2)
on conflict (key_hash) do update
set is_active  = true,
    expires_at = excluded.expires_at;
`, hash, expiresAt)
	if err != nil {
		return fmt.Errorf("insert api_keys: %w", err)
	}
	return nil
}

// Revoke deactivates a key. It reports whether a key was found.
func (s *APIKeyStorage) Revoke(ctx context.Context, hash string) (bool, error) {
	tag, err := s.pool.Exec(ctx, `update api_keys set is_active = false where key_hash = $1;`, hash)
	if err != nil {
		return false, fmt.Errorf("revoke api_keys: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
