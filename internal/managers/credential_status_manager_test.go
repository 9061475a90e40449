package managers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/taskloom/taskloom/pkg/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOAuthAccountRepository struct {
	accounts []domain.OAuthAccount
	err      error
}

func (s *stubOAuthAccountRepository) ListOAuthAccounts(ctx context.Context, userID string) ([]domain.OAuthAccount, error) {
	return s.accounts, s.err
}

type stubAPIKeyRepository struct {
	keys []domain.APIKey
	err  error
}

func (s *stubAPIKeyRepository) ListAPIKeys(ctx context.Context, userID string) ([]domain.APIKey, error) {
	return s.keys, s.err
}

func newTestStatusManager(accounts *stubOAuthAccountRepository, keys *stubAPIKeyRepository, now time.Time) *CredentialStatusManager {
	manager := NewCredentialStatusManager(CredentialStatusManagerDependencies{
		OAuthAccountRepository: accounts,
		APIKeyRepository:       keys,
	})
	manager.now = func() time.Time { return now }

	return manager
}

func statusByPlatform(t *testing.T, statuses []domain.CredentialStatus, platform string) domain.CredentialStatus {
	t.Helper()

	for _, status := range statuses {
		if status.Platform == platform {
			return status
		}
	}

	t.Fatalf("no status for platform %q", platform)

	return domain.CredentialStatus{}
}

func TestCredentialStatusManager_ResolveStatuses(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	accounts := &stubOAuthAccountRepository{accounts: []domain.OAuthAccount{
		{ID: "acc-1", Provider: "twitter", Label: "@ada", HasAccessToken: true},
	}}
	keys := &stubAPIKeyRepository{keys: []domain.APIKey{
		{ID: "key-1", Platform: "openai", Name: "Production", HasEncryptedValue: true},
	}}

	manager := newTestStatusManager(accounts, keys, now)

	statuses, err := manager.ResolveStatuses(context.Background(), "user-1", []string{"twitter", "openai"})
	require.NoError(t, err)
	require.Len(t, statuses, 2)

	twitter := statusByPlatform(t, statuses, "twitter")
	assert.Equal(t, domain.PlatformTypeOAuth, twitter.Type)
	assert.Equal(t, "Twitter", twitter.DisplayName)
	assert.True(t, twitter.Connected)
	require.Len(t, twitter.OAuthAccounts, 1)
	assert.Equal(t, "acc-1", twitter.OAuthAccounts[0].ID)
	assert.False(t, twitter.OAuthAccounts[0].IsExpired)
	assert.NotNil(t, twitter.APIKeys)
	assert.Empty(t, twitter.APIKeys)

	openai := statusByPlatform(t, statuses, "openai")
	assert.Equal(t, domain.PlatformTypeAPIKey, openai.Type)
	assert.True(t, openai.Connected)
	require.Len(t, openai.APIKeys, 1)
	assert.Equal(t, "Production", openai.APIKeys[0].Name)
	assert.NotNil(t, openai.OAuthAccounts)
	assert.Empty(t, openai.OAuthAccounts)
}

func TestCredentialStatusManager_AccountsWithoutTokenAreExcluded(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	accounts := &stubOAuthAccountRepository{accounts: []domain.OAuthAccount{
		{ID: "acc-1", Provider: "twitter", Label: "@ada", HasAccessToken: false},
	}}

	manager := newTestStatusManager(accounts, &stubAPIKeyRepository{}, now)

	statuses, err := manager.ResolveStatuses(context.Background(), "user-1", []string{"twitter"})
	require.NoError(t, err)
	require.Len(t, statuses, 1)

	assert.False(t, statuses[0].Connected)
	assert.Empty(t, statuses[0].OAuthAccounts)
}

func TestCredentialStatusManager_ExpiryBoundary(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name            string
		expiresAtMillis int64
		expectExpired   bool
	}{
		{
			name:            "no expiry never expires",
			expiresAtMillis: 0,
			expectExpired:   false,
		},
		{
			name:            "expiry exactly now counts as expired",
			expiresAtMillis: now.UnixMilli(),
			expectExpired:   true,
		},
		{
			name:            "expiry in the past is expired",
			expiresAtMillis: now.Add(-time.Hour).UnixMilli(),
			expectExpired:   true,
		},
		{
			name:            "expiry in the future is not expired",
			expiresAtMillis: now.Add(time.Hour).UnixMilli(),
			expectExpired:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accounts := &stubOAuthAccountRepository{accounts: []domain.OAuthAccount{
				{ID: "acc-1", Provider: "github", HasAccessToken: true, ExpiresAtMillis: tt.expiresAtMillis},
			}}

			manager := newTestStatusManager(accounts, &stubAPIKeyRepository{}, now)

			statuses, err := manager.ResolveStatuses(context.Background(), "user-1", []string{"github"})
			require.NoError(t, err)
			require.Len(t, statuses, 1)

			// Expired accounts still count as connected, flagged per account.
			assert.True(t, statuses[0].Connected)
			require.Len(t, statuses[0].OAuthAccounts, 1)
			assert.Equal(t, tt.expectExpired, statuses[0].OAuthAccounts[0].IsExpired)
		})
	}
}

func TestCredentialStatusManager_KeysWithoutValueAreExcluded(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	keys := &stubAPIKeyRepository{keys: []domain.APIKey{
		{ID: "key-1", Platform: "openai", Name: "Empty", HasEncryptedValue: false},
	}}

	manager := newTestStatusManager(&stubOAuthAccountRepository{}, keys, now)

	statuses, err := manager.ResolveStatuses(context.Background(), "user-1", []string{"openai"})
	require.NoError(t, err)
	require.Len(t, statuses, 1)

	assert.False(t, statuses[0].Connected)
	assert.Empty(t, statuses[0].APIKeys)
}

func TestCredentialStatusManager_OAuthLookupFailureDegrades(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	accounts := &stubOAuthAccountRepository{err: domain.ErrOAuthStoreUnavailable}
	keys := &stubAPIKeyRepository{keys: []domain.APIKey{
		{ID: "key-1", Platform: "openai", Name: "Production", HasEncryptedValue: true},
	}}

	manager := newTestStatusManager(accounts, keys, now)

	statuses, err := manager.ResolveStatuses(context.Background(), "user-1", []string{"twitter", "openai"})
	require.NoError(t, err)
	require.Len(t, statuses, 2)

	twitter := statusByPlatform(t, statuses, "twitter")
	assert.False(t, twitter.Connected)
	assert.Empty(t, twitter.OAuthAccounts)

	openai := statusByPlatform(t, statuses, "openai")
	assert.True(t, openai.Connected)
}

func TestCredentialStatusManager_APIKeyLookupFailurePropagates(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	keys := &stubAPIKeyRepository{err: errors.New("connection refused")}

	manager := newTestStatusManager(&stubOAuthAccountRepository{}, keys, now)

	_, err := manager.ResolveStatuses(context.Background(), "user-1", []string{"openai"})
	require.Error(t, err)
}

func TestCredentialStatusManager_MultipleAccountsPerPlatform(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	accounts := &stubOAuthAccountRepository{accounts: []domain.OAuthAccount{
		{ID: "acc-1", Provider: "discord", Label: "Ada's server", HasAccessToken: true},
		{ID: "acc-2", Provider: "discord", Label: "Team server", HasAccessToken: true, ExpiresAtMillis: now.Add(-time.Minute).UnixMilli()},
		{ID: "acc-3", Provider: "twitter", Label: "@ada", HasAccessToken: true},
	}}

	manager := newTestStatusManager(accounts, &stubAPIKeyRepository{}, now)

	statuses, err := manager.ResolveStatuses(context.Background(), "user-1", []string{"discord"})
	require.NoError(t, err)
	require.Len(t, statuses, 1)

	require.Len(t, statuses[0].OAuthAccounts, 2)
	assert.False(t, statuses[0].OAuthAccounts[0].IsExpired)
	assert.True(t, statuses[0].OAuthAccounts[1].IsExpired)
}
