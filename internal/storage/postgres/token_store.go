package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/storage"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/types"
)

// TokenStore persists access tokens in PostgreSQL. TTL is enforced at read
// time against expires_at; rows without an expiry are static credentials.
type TokenStore struct {
	db *DB
}

func NewTokenStore(db *DB) *TokenStore {
	return &TokenStore{db: db}
}

// EnsureSchema creates the access_tokens table when it does not exist yet.
func (s *TokenStore) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS access_tokens (
			merchant_id   TEXT        NOT NULL,
			connector     TEXT        NOT NULL,
			token         TEXT        NOT NULL,
			expires_in    BIGINT      NOT NULL,
			created_at    TIMESTAMPTZ,
			expires_at    TIMESTAMPTZ,
			PRIMARY KEY (merchant_id, connector)
		)
	`

	if _, err := s.db.Pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create access_tokens table: %w", err)
	}
	return nil
}

func (s *TokenStore) Get(ctx context.Context, merchantID, connectorName string) (*types.AccessToken, error) {
	query := `
		SELECT token, expires_in, created_at
		FROM access_tokens
		WHERE merchant_id = $1 AND connector = $2
		  AND (expires_at IS NULL OR expires_at > now())
	`

	var token types.AccessToken
	err := s.db.Pool.QueryRow(ctx, query, merchantID, connectorName).Scan(
		&token.Token,
		&token.ExpiresIn,
		&token.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to read access token: %w", err)
	}

	return &token, nil
}

func (s *TokenStore) Set(ctx context.Context, merchantID, connectorName string, token types.AccessToken, ttl time.Duration) error {
	query := `
		INSERT INTO access_tokens (merchant_id, connector, token, expires_in, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (merchant_id, connector) DO UPDATE SET
			token      = EXCLUDED.token,
			expires_in = EXCLUDED.expires_in,
			created_at = EXCLUDED.created_at,
			expires_at = EXCLUDED.expires_at
	`

	var expiresAt *time.Time
	if ttl > 0 {
		t := time.Now().Add(ttl)
		expiresAt = &t
	}

	_, err := s.db.Pool.Exec(ctx, query,
		merchantID,
		connectorName,
		token.Token,
		token.ExpiresIn,
		token.CreatedAt,
		expiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to store access token: %w", err)
	}

	return nil
}
