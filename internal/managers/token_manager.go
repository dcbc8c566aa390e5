package managers

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrOpaqueToken is returned for credentials that are not JWTs.
var ErrOpaqueToken = errors.New("credential is not a JWT")

// TokenMgr inspects access credentials issued by the backend. The client holds
// no verification key, so signatures are never checked.
type TokenMgr interface {
	Inspect(token string) (*TokenInfo, error)
	IsExpired(token string, now time.Time) bool
}

// TokenInfo is what the client can learn from an access credential.
type TokenInfo struct {
	UserID    string
	ExpiresAt time.Time
	HasExpiry bool
}

// TokenManager reads JWT claims without verifying them.
type TokenManager struct {
	parser *jwt.Parser
}

func NewTokenManager() TokenMgr {
	return &TokenManager{parser: jwt.NewParser()}
}

// Inspect extracts the user id and expiry of token.
func (tm *TokenManager) Inspect(token string) (*TokenInfo, error) {
	claims := jwt.MapClaims{}
	if _, _, err := tm.parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpaqueToken, err)
	}

	info := &TokenInfo{}
	if userID, ok := claims["user_id"]; ok && userID != nil {
		info.UserID = fmt.Sprint(userID)
	} else if sub, err := claims.GetSubject(); err == nil {
		info.UserID = sub
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("read expiry: %w", err)
	}
	if exp != nil {
		info.ExpiresAt = exp.Time
		info.HasExpiry = true
	}
	return info, nil
}

// IsExpired reports whether token is a JWT whose expiry lies before now.
// Opaque credentials and JWTs without expiry are never considered expired.
func (tm *TokenManager) IsExpired(token string, now time.Time) bool {
	info, err := tm.Inspect(token)
	if err != nil || !info.HasExpiry {
		return false
	}
	return !now.Before(info.ExpiresAt)
}
