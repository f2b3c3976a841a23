package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const verifyAttemptPrefix = "sms:verify:attempts:"

// VerifyAttemptStore tracks failed SMS code verifications per phone
// number and locks the phone out after too many failures. It slows
// down brute-forcing of the short numeric codes.
type VerifyAttemptStore struct {
	client      *redis.Client
	maxAttempts int
	lockoutTTL  time.Duration
}

// NewVerifyAttemptStore creates a verify attempt store.
func NewVerifyAttemptStore(client *redis.Client, maxAttempts int, lockoutTTL time.Duration) *VerifyAttemptStore {
	return &VerifyAttemptStore{
		client:      client,
		maxAttempts: maxAttempts,
		lockoutTTL:  lockoutTTL,
	}
}

// IsLocked reports whether the phone has exhausted its attempts.
func (s *VerifyAttemptStore) IsLocked(ctx context.Context, phone string) (bool, error) {
	attempts, err := s.client.Get(ctx, verifyAttemptPrefix+phone).Int()
	if err != nil && err != redis.Nil {
		return false, fmt.Errorf("failed to check verify attempts: %w", err)
	}
	return attempts >= s.maxAttempts, nil
}

// RecordFailure increments the failed attempt counter. The lockout
// window starts on the first failure.
func (s *VerifyAttemptStore) RecordFailure(ctx context.Context, phone string) error {
	key := verifyAttemptPrefix + phone

	attempts, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to record verify attempt: %w", err)
	}
	if attempts == 1 {
		if err := s.client.Expire(ctx, key, s.lockoutTTL).Err(); err != nil {
			return fmt.Errorf("failed to set lockout window: %w", err)
		}
	}
	return nil
}

// Clear resets the counter after a successful verification.
func (s *VerifyAttemptStore) Clear(ctx context.Context, phone string) error {
	if err := s.client.Del(ctx, verifyAttemptPrefix+phone).Err(); err != nil {
		return fmt.Errorf("failed to clear verify attempts: %w", err)
	}
	return nil
}
