// Package postgres is the PostgreSQL flavor of the persistence adapters.
// OAuth token expiry is persisted as a native timestamptz and normalized to
// epoch milliseconds here, so callers never see backend-specific time units.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/taskloom/taskloom/pkg/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool
}

type StoreDeps struct {
	Context context.Context
	DSN     string
}

func NewStore(deps StoreDeps) (*Store, error) {
	pool, err := pgxpool.New(deps.Context, deps.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	if err := pool.Ping(deps.Context); err != nil {
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) GetWorkflowForUser(ctx context.Context, workflowID string, userID string) (domain.Workflow, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, user_id, name, COALESCE(description, ''), config, created_at, last_updated_at
		FROM workflows
		WHERE id = $1 AND user_id = $2`,
		workflowID, userID,
	)

	var workflow domain.Workflow

	err := row.Scan(
		&workflow.ID,
		&workflow.UserID,
		&workflow.Name,
		&workflow.Description,
		&workflow.Config,
		&workflow.CreatedAt,
		&workflow.LastUpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Workflow{}, domain.ErrWorkflowNotFound
	}
	if err != nil {
		return domain.Workflow{}, fmt.Errorf("failed to get workflow %s: %w", workflowID, err)
	}

	return workflow, nil
}

func (s *Store) ListOAuthAccounts(ctx context.Context, userID string) ([]domain.OAuthAccount, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, provider, COALESCE(account_label, ''), access_token IS NOT NULL AND access_token <> '', expires_at
		FROM oauth_accounts
		WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrOAuthStoreUnavailable, err)
	}
	defer rows.Close()

	accounts := []domain.OAuthAccount{}

	for rows.Next() {
		var (
			account   domain.OAuthAccount
			expiresAt *time.Time
		)

		if err := rows.Scan(&account.ID, &account.Provider, &account.Label, &account.HasAccessToken, &expiresAt); err != nil {
			return nil, fmt.Errorf("failed to scan oauth account: %w", err)
		}

		if expiresAt != nil {
			account.ExpiresAtMillis = expiresAt.UnixMilli()
		}

		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrOAuthStoreUnavailable, err)
	}

	return accounts, nil
}

func (s *Store) ListAPIKeys(ctx context.Context, userID string) ([]domain.APIKey, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, platform, name, encrypted_value IS NOT NULL AND encrypted_value <> ''
		FROM api_keys
		WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list api keys: %w", err)
	}
	defer rows.Close()

	keys := []domain.APIKey{}

	for rows.Next() {
		var key domain.APIKey

		if err := rows.Scan(&key.ID, &key.Platform, &key.Name, &key.HasEncryptedValue); err != nil {
			return nil, fmt.Errorf("failed to scan api key: %w", err)
		}

		keys = append(keys, key)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list api keys: %w", err)
	}

	return keys, nil
}
