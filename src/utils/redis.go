package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	DB "Backend-ShiftFilter/src/database"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var Ctx = context.Background()

// ensureClient returns the shared Redis client managed by the database package.
// If the database package didn't initialize Redis, this will return nil and
// callers should handle that case.
func ensureClient() *redis.Client {
	return DB.RedisClient
}

// BlacklistToken เพิ่ม token id เข้า blacklist (ใช้ตอน logout) จนกว่า token จะหมดอายุ
// Returns nil if Redis is not available (development mode)
func BlacklistToken(tokenID string, expiresIn time.Duration) error {
	client := ensureClient()
	if client == nil {
		zap.L().Debug("redis client not initialized, skip blacklist")
		return nil
	}
	if expiresIn <= 0 {
		return nil
	}

	key := fmt.Sprintf("blacklist:%s", tokenID)
	if err := client.Set(Ctx, key, "1", expiresIn).Err(); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}
	return nil
}

// IsTokenBlacklisted ตรวจสอบว่า token อยู่ใน blacklist หรือไม่
// Returns false if Redis is not available (development mode - allow all tokens)
func IsTokenBlacklisted(tokenID string) (bool, error) {
	client := ensureClient()
	if client == nil {
		return false, nil
	}

	key := fmt.Sprintf("blacklist:%s", tokenID)
	_, err := client.Get(Ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil // Token ไม่อยู่ใน blacklist
		}
		return false, fmt.Errorf("failed to check blacklist: %w", err)
	}
	return true, nil
}
