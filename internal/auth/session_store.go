package auth

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"

	"workoutapi/internal/cache"
)

const sessionRevokedKeyPrefix = "sessions_revoked_at:"

// SessionStoreInterface tracks per-user revocation of session tokens.
type SessionStoreInterface interface {
	RevokeSessions(ctx context.Context, userID uuid.UUID, at time.Time, ttl time.Duration) error
	IsRevoked(ctx context.Context, userID uuid.UUID, issuedAt time.Time) (bool, error)
}

// SessionStore records the instant before which a user's session tokens stop
// being accepted. The marker only needs to outlive the longest session TTL.
type SessionStore struct {
	cache *cache.Client
}

// Ensure SessionStore implements SessionStoreInterface
var _ SessionStoreInterface = (*SessionStore)(nil)

// NewSessionStore creates a new session store.
func NewSessionStore(cache *cache.Client) *SessionStore {
	return &SessionStore{cache: cache}
}

// RevokeSessions rejects every session issued for userID before at.
func (s *SessionStore) RevokeSessions(ctx context.Context, userID uuid.UUID, at time.Time, ttl time.Duration) error {
	value := strconv.FormatInt(at.UnixMilli(), 10)
	return s.cache.Set(ctx, sessionRevokedKeyPrefix+userID.String(), []byte(value), ttl)
}

// IsRevoked reports whether a session issued at issuedAt was revoked. Both
// instants are compared in milliseconds.
func (s *SessionStore) IsRevoked(ctx context.Context, userID uuid.UUID, issuedAt time.Time) (bool, error) {
	data, err := s.cache.Get(ctx, sessionRevokedKeyPrefix+userID.String())
	if err != nil || data == nil {
		return false, nil
	}
	revokedAt, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return false, nil
	}
	return issuedAt.UnixMilli() < revokedAt, nil
}
