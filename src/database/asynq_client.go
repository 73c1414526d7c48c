package database

import (
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

var AsynqClient *asynq.Client

// InitAsynq initializes Asynq client only if Redis is available
func InitAsynq() {
	// Check if Redis is available (RedisClient != nil means InitRedis was successful)
	if RedisClient == nil || RedisURI == "" {
		zap.L().Warn("⚠️ Redis not available. Asynq client will not be initialized.")
		return
	}

	AsynqClient = asynq.NewClient(asynq.RedisClientOpt{Addr: RedisURI})
	zap.L().Info("✅ Asynq Client initialized successfully")
}
