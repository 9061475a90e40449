package domain

import (
	"context"
	"errors"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionRepository resolves an active session id to its user. Sessions are
// written by the login flow and revoked on logout; this service only reads
// them.
type SessionRepository interface {
	GetSessionUserID(ctx context.Context, sessionID string) (string, error)
}
