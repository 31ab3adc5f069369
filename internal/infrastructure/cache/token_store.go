package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// TokenStore is the Redis allowlist of issued tokens. A token is only
// honoured while its key exists, so deleting the key revokes it.
type TokenStore struct {
	client *redis.Client
}

func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

func accessKey(userID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("access_token:%s:%s", userID.String(), tokenID)
}

func refreshKey(userID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("refresh_token:%s:%s", userID.String(), tokenID)
}

// StorePair records an access/refresh pair in one round trip.
func (s *TokenStore) StorePair(ctx context.Context, userID uuid.UUID, accessID string, accessTTL time.Duration, refreshID string, refreshTTL time.Duration) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, accessKey(userID, accessID), "valid", accessTTL)
		pipe.Set(ctx, refreshKey(userID, refreshID), "valid", refreshTTL)
		return nil
	})
	return err
}

func (s *TokenStore) AccessExists(ctx context.Context, userID uuid.UUID, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, accessKey(userID, tokenID)).Result()
	return n > 0, err
}

// ConsumeRefresh deletes a refresh token and reports whether it was present.
func (s *TokenStore) ConsumeRefresh(ctx context.Context, userID uuid.UUID, tokenID string) (bool, error) {
	n, err := s.client.Del(ctx, refreshKey(userID, tokenID)).Result()
	return n > 0, err
}

// Revoke drops the given tokens. Empty ids are skipped.
func (s *TokenStore) Revoke(ctx context.Context, userID uuid.UUID, accessID, refreshID string) error {
	keys := make([]string, 0, 2)
	if accessID != "" {
		keys = append(keys, accessKey(userID, accessID))
	}
	if refreshID != "" {
		keys = append(keys, refreshKey(userID, refreshID))
	}
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

// RevokeAll drops every token issued to the user.
func (s *TokenStore) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	for _, pattern := range []string{accessKey(userID, "*"), refreshKey(userID, "*")} {
		iter := s.client.Scan(ctx, 0, pattern, 100).Iterator()
		var keys []string
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
	}
	return nil
}
