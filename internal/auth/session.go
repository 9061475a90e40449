package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/taskloom/taskloom/pkg/domain"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the authenticated principal attached to a request.
type Session struct {
	ID     string
	UserID string
}

// SessionVerifier validates a bearer token and resolves the principal behind
// it.
type SessionVerifier interface {
	VerifySession(ctx context.Context, token string) (Session, error)
}

type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// JWTSessionVerifier checks the token signature, then confirms the session is
// still active in the session repository. Signed tokens alone are not enough;
// logout revokes the session server-side.
type JWTSessionVerifier struct {
	secret            []byte
	sessionRepository domain.SessionRepository
}

func NewJWTSessionVerifier(secret string, sessionRepository domain.SessionRepository) *JWTSessionVerifier {
	return &JWTSessionVerifier{
		secret:            []byte(secret),
		sessionRepository: sessionRepository,
	}
}

func (v *JWTSessionVerifier) VerifySession(ctx context.Context, token string) (Session, error) {
	claims := &sessionClaims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}

		return v.secret, nil
	})
	if err != nil {
		return Session{}, fmt.Errorf("failed to parse session token: %w", err)
	}

	if !parsed.Valid || claims.SessionID == "" || claims.Subject == "" {
		return Session{}, errors.New("session token is not valid")
	}

	userID, err := v.sessionRepository.GetSessionUserID(ctx, claims.SessionID)
	if err != nil {
		return Session{}, fmt.Errorf("failed to resolve session %s: %w", claims.SessionID, err)
	}

	if userID != claims.Subject {
		return Session{}, errors.New("session does not belong to token subject")
	}

	return Session{
		ID:     claims.SessionID,
		UserID: userID,
	}, nil
}
