package managers

import (
	"context"
	"fmt"
	"time"

	"github.com/taskloom/taskloom/pkg/domain"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// CredentialStatusManager resolves which of the required platforms a user has
// credentials connected for, reading both credential stores.
type CredentialStatusManager struct {
	oauthAccountRepository domain.OAuthAccountRepository
	apiKeyRepository       domain.APIKeyRepository
	now                    func() time.Time
}

type CredentialStatusManagerDependencies struct {
	OAuthAccountRepository domain.OAuthAccountRepository
	APIKeyRepository       domain.APIKeyRepository
}

func NewCredentialStatusManager(deps CredentialStatusManagerDependencies) *CredentialStatusManager {
	return &CredentialStatusManager{
		oauthAccountRepository: deps.OAuthAccountRepository,
		apiKeyRepository:       deps.APIKeyRepository,
		now:                    time.Now,
	}
}

// ResolveStatuses returns one CredentialStatus per required platform. The two
// store lookups are independent reads for the same user and run concurrently.
//
// A failing OAuth lookup does not fail resolution: the OAuth store is optional
// infrastructure, so oauth platforms degrade to disconnected and the error is
// logged. An API key lookup failure propagates.
func (m *CredentialStatusManager) ResolveStatuses(ctx context.Context, userID string, platforms []string) ([]domain.CredentialStatus, error) {
	var (
		oauthAccounts []domain.OAuthAccount
		apiKeys       []domain.APIKey
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		accounts, err := m.oauthAccountRepository.ListOAuthAccounts(groupCtx, userID)
		if err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("OAuth account lookup failed, treating oauth platforms as disconnected")

			return nil
		}

		oauthAccounts = accounts

		return nil
	})

	group.Go(func() error {
		keys, err := m.apiKeyRepository.ListAPIKeys(groupCtx, userID)
		if err != nil {
			return fmt.Errorf("failed to list api keys: %w", err)
		}

		apiKeys = keys

		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}

	now := m.now().UnixMilli()

	statuses := make([]domain.CredentialStatus, 0, len(platforms))

	for _, platform := range platforms {
		switch domain.ClassifyPlatform(platform) {
		case domain.PlatformTypeOAuth:
			statuses = append(statuses, m.oauthStatus(platform, oauthAccounts, now))
		default:
			statuses = append(statuses, m.apiKeyStatus(platform, apiKeys))
		}
	}

	return statuses, nil
}

func (m *CredentialStatusManager) oauthStatus(platform string, accounts []domain.OAuthAccount, nowMillis int64) domain.CredentialStatus {
	connected := make([]domain.ConnectedOAuthAccount, 0)

	for _, account := range accounts {
		// Accounts without a stored access token never counted as connected,
		// not even as an expired connection.
		if account.Provider != platform || !account.HasAccessToken {
			continue
		}

		connected = append(connected, domain.ConnectedOAuthAccount{
			ID:        account.ID,
			Label:     account.Label,
			IsExpired: account.ExpiresAtMillis != 0 && account.ExpiresAtMillis <= nowMillis,
		})
	}

	return domain.CredentialStatus{
		Platform:      platform,
		Type:          domain.PlatformTypeOAuth,
		DisplayName:   domain.PlatformDisplayName(platform),
		Icon:          domain.PlatformIcon(platform),
		Connected:     len(connected) > 0,
		OAuthAccounts: connected,
		APIKeys:       make([]domain.ConnectedAPIKey, 0),
	}
}

func (m *CredentialStatusManager) apiKeyStatus(platform string, keys []domain.APIKey) domain.CredentialStatus {
	connected := make([]domain.ConnectedAPIKey, 0)

	for _, key := range keys {
		if key.Platform != platform || !key.HasEncryptedValue {
			continue
		}

		connected = append(connected, domain.ConnectedAPIKey{
			ID:   key.ID,
			Name: key.Name,
		})
	}

	return domain.CredentialStatus{
		Platform:      platform,
		Type:          domain.PlatformTypeAPIKey,
		DisplayName:   domain.PlatformDisplayName(platform),
		Icon:          domain.PlatformIcon(platform),
		Connected:     len(connected) > 0,
		OAuthAccounts: make([]domain.ConnectedOAuthAccount, 0),
		APIKeys:       connected,
	}
}
