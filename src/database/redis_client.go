package database

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var RedisClient *redis.Client
var RedisCtx = context.Background()

// RedisURI ที่อยู่ Redis (เช่น localhost:6379) ใช้ร่วมกับ Asynq
var RedisURI string

// InitRedis เชื่อมต่อ Redis ถ้าไม่มีหรือเชื่อมต่อไม่ได้ ระบบยังทำงานต่อได้ (dev mode)
func InitRedis(addr string) {
	if addr == "" {
		zap.L().Warn("⚠️ REDIS_URI not set. Token blacklist and upload audit are disabled.")
		return
	}

	c := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "", // ถ้าไม่มีรหัสผ่าน
		DB:       0,
	})
	if _, err := c.Ping(RedisCtx).Result(); err != nil {
		zap.L().Warn("⚠️ Failed to connect Redis", zap.String("addr", addr), zap.Error(err))
		_ = c.Close()
		return
	}
	RedisClient = c
	RedisURI = addr
	zap.L().Info("✅ Redis connected", zap.String("addr", addr))
}
