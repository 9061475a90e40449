package domain

import (
	"context"
	"errors"
)

// ErrOAuthStoreUnavailable marks OAuth account lookups that failed because the
// backing store is absent or unreachable. The resolver absorbs it; it must
// never reach a caller.
var ErrOAuthStoreUnavailable = errors.New("oauth account store unavailable")

// OAuthAccount is one authorization grant a user holds for a platform. A user
// may connect several accounts for the same provider. ExpiresAtMillis is the
// access token expiry normalized to epoch milliseconds by the store adapter;
// zero means the token does not expire.
type OAuthAccount struct {
	ID              string
	Provider        string
	Label           string
	HasAccessToken  bool
	ExpiresAtMillis int64
}

// APIKey is one named secret a user stored for a platform. The value itself
// stays encrypted at rest; this read model only reports whether one exists.
type APIKey struct {
	ID                string
	Platform          string
	Name              string
	HasEncryptedValue bool
}

// OAuthAccountRepository lists a user's OAuth accounts. Implementations exist
// per storage backend and must normalize expiry to epoch milliseconds before
// returning, whatever unit the backend persists.
type OAuthAccountRepository interface {
	ListOAuthAccounts(ctx context.Context, userID string) ([]OAuthAccount, error)
}

// APIKeyRepository lists a user's stored API keys.
type APIKeyRepository interface {
	ListAPIKeys(ctx context.Context, userID string) ([]APIKey, error)
}

// ConnectedOAuthAccount is the per-account slice of a CredentialStatus.
type ConnectedOAuthAccount struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	IsExpired bool   `json:"is_expired"`
}

// ConnectedAPIKey is the per-key slice of a CredentialStatus.
type ConnectedAPIKey struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CredentialStatus reports, for one required platform, whether the user has a
// usable credential connected. Exactly one of OAuthAccounts and APIKeys is
// populated depending on Type; the other is present but empty so the wire
// shape stays uniform.
type CredentialStatus struct {
	Platform      string                  `json:"platform"`
	Type          PlatformType            `json:"type"`
	DisplayName   string                  `json:"display_name"`
	Icon          string                  `json:"icon"`
	Connected     bool                    `json:"connected"`
	OAuthAccounts []ConnectedOAuthAccount `json:"oauth_accounts"`
	APIKeys       []ConnectedAPIKey       `json:"api_keys"`
}
