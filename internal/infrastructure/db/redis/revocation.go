package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// watermarkClient is the part of the go-redis API the store uses.
// *redis.Client satisfies it.
type watermarkClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// RevocationStore keeps one watermark per token subject.
// Key format: revoked:<subject>, value: unix seconds of the revocation.
type RevocationStore struct {
	client watermarkClient
	ttl    time.Duration
}

// NewRevocationStore creates a store whose keys expire after ttl. ttl should
// equal the token lifetime: once every token issued before the watermark has
// expired, the key is no longer needed.
func NewRevocationStore(client watermarkClient, ttl time.Duration) *RevocationStore {
	return &RevocationStore{client: client, ttl: ttl}
}

// RevokeSubject records at as the subject's watermark.
func (s *RevocationStore) RevokeSubject(ctx context.Context, subject string, at time.Time) error {
	if err := s.client.Set(ctx, revocationKey(subject), at.Unix(), s.ttl).Err(); err != nil {
		return fmt.Errorf("revoke subject: %w", err)
	}
	return nil
}

// IsRevoked reports whether a token issued at issuedAt predates the subject's watermark.
func (s *RevocationStore) IsRevoked(ctx context.Context, subject string, issuedAt time.Time) (bool, error) {
	raw, err := s.client.Get(ctx, revocationKey(subject)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}

	watermark, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return false, fmt.Errorf("revocation check: bad watermark %q: %w", raw, err)
	}
	return issuedBefore(issuedAt, watermark), nil
}

// issuedBefore compares at second precision, the resolution of the iat claim.
func issuedBefore(issuedAt time.Time, watermark int64) bool {
	return issuedAt.Unix() < watermark
}

func revocationKey(subject string) string {
	return "revoked:" + subject
}
