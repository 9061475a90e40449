// Package mongodb is the MongoDB flavor of the persistence adapters. OAuth
// token expiry is persisted as seconds since epoch in account documents and
// normalized to epoch milliseconds here.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/taskloom/taskloom/pkg/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	database *mongo.Database
}

type StoreDeps struct {
	Context      context.Context
	URI          string
	DatabaseName string
}

func NewStore(deps StoreDeps) (*Store, error) {
	client, err := mongo.Connect(deps.Context, options.Client().ApplyURI(deps.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	ctx, cancel := context.WithTimeout(deps.Context, 10*time.Second)
	defer cancel()

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &Store{database: client.Database(deps.DatabaseName)}, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.database.Client().Disconnect(ctx)
}

type workflowDocument struct {
	ID            string    `bson:"id"`
	UserID        string    `bson:"user_id"`
	Name          string    `bson:"name"`
	Description   string    `bson:"description,omitempty"`
	Config        []byte    `bson:"config"`
	CreatedAt     time.Time `bson:"created_at"`
	LastUpdatedAt time.Time `bson:"last_updated_at"`
}

type oauthAccountDocument struct {
	ID           string `bson:"id"`
	UserID       string `bson:"user_id"`
	Provider     string `bson:"provider"`
	AccountLabel string `bson:"account_label,omitempty"`
	AccessToken  string `bson:"access_token,omitempty"`
	// Seconds since epoch; zero means the token never expires.
	ExpiresAt int64 `bson:"expires_at,omitempty"`
}

type apiKeyDocument struct {
	ID             string `bson:"id"`
	UserID         string `bson:"user_id"`
	Platform       string `bson:"platform"`
	Name           string `bson:"name"`
	EncryptedValue string `bson:"encrypted_value,omitempty"`
}

func (s *Store) GetWorkflowForUser(ctx context.Context, workflowID string, userID string) (domain.Workflow, error) {
	filter := bson.M{"id": workflowID, "user_id": userID}

	var doc workflowDocument

	err := s.database.Collection("workflows").FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Workflow{}, domain.ErrWorkflowNotFound
	}
	if err != nil {
		return domain.Workflow{}, fmt.Errorf("failed to get workflow %s: %w", workflowID, err)
	}

	return domain.Workflow{
		ID:            doc.ID,
		UserID:        doc.UserID,
		Name:          doc.Name,
		Description:   doc.Description,
		Config:        doc.Config,
		CreatedAt:     doc.CreatedAt,
		LastUpdatedAt: doc.LastUpdatedAt,
	}, nil
}

func (s *Store) ListOAuthAccounts(ctx context.Context, userID string) ([]domain.OAuthAccount, error) {
	cursor, err := s.database.Collection("oauth_accounts").Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrOAuthStoreUnavailable, err)
	}

	var docs []oauthAccountDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrOAuthStoreUnavailable, err)
	}

	accounts := make([]domain.OAuthAccount, 0, len(docs))

	for _, doc := range docs {
		account := domain.OAuthAccount{
			ID:             doc.ID,
			Provider:       doc.Provider,
			Label:          doc.AccountLabel,
			HasAccessToken: doc.AccessToken != "",
		}

		if doc.ExpiresAt != 0 {
			account.ExpiresAtMillis = doc.ExpiresAt * 1000
		}

		accounts = append(accounts, account)
	}

	return accounts, nil
}

func (s *Store) ListAPIKeys(ctx context.Context, userID string) ([]domain.APIKey, error) {
	cursor, err := s.database.Collection("api_keys").Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list api keys: %w", err)
	}

	var docs []apiKeyDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode api keys: %w", err)
	}

	keys := make([]domain.APIKey, 0, len(docs))

	for _, doc := range docs {
		keys = append(keys, domain.APIKey{
			ID:                doc.ID,
			Platform:          doc.Platform,
			Name:              doc.Name,
			HasEncryptedValue: doc.EncryptedValue != "",
		})
	}

	return keys, nil
}
