// Copyright (c) 2026 Shelfwise. All rights reserved.
// Author: le.minhkhoa.dev@gmail.com

package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/leminhkhoa/shelfwise/internal/platform/constants"
)

// RedisAuditRepository implements AuditRepository using Redis.
type RedisAuditRepository struct {
	client *redis.Client
}

// NewAuditRepository creates a new Redis-backed AuditRepository.
func NewAuditRepository(client *redis.Client) *RedisAuditRepository {
	return &RedisAuditRepository{client: client}
}

/*
Record stores an issued token's jti with the borrower's email and TTL.

Parameters:
  - context: context.Context
  - tokenID: string (The token's 'jti' claim)
  - email: string
  - ttl: time.Duration (Token lifetime; the entry expires with the token)

Returns:
  - error: Storage failures
*/
func (repository *RedisAuditRepository) Record(context context.Context, tokenID string, email string, ttl time.Duration) error {

	// Use constants for key prefix
	key := fmt.Sprintf("%s%s", constants.RedisPrefixSession, tokenID)

	// Set the entry with TTL
	if err := repository.client.Set(context, key, email, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_record_failed: %w", err)
	}

	// Return nil on success
	return nil
}

/*
Delete removes the audit entry at logout.

Parameters:
  - context: context.Context
  - tokenID: string (The token's 'jti' claim)

Returns:
  - error: Deletion failures
*/
func (repository *RedisAuditRepository) Delete(context context.Context, tokenID string) error {

	// Use constants for key prefix
	key := fmt.Sprintf("%s%s", constants.RedisPrefixSession, tokenID)

	// Delete the entry from Redis
	if err := repository.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}

	// Return nil on success
	return nil
}
