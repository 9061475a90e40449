// Package redis backs the session store. Sessions are written by the login
// flow; this service only resolves session ids to users.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/taskloom/taskloom/pkg/domain"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

type SessionStore struct {
	client *redis.Client
}

type SessionStoreDeps struct {
	Context  context.Context
	Address  string
	Password string
	DB       int
}

func NewSessionStore(deps SessionStoreDeps) (*SessionStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     deps.Address,
		Password: deps.Password,
		DB:       deps.DB,
	})

	if err := client.Ping(deps.Context).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &SessionStore{client: client}, nil
}

func (s *SessionStore) Close() error {
	return s.client.Close()
}

func (s *SessionStore) GetSessionUserID(ctx context.Context, sessionID string) (string, error) {
	userID, err := s.client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrSessionNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get session %s: %w", sessionID, err)
	}

	return userID, nil
}
