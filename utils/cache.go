// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"realtalk/config"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

var (
	// SelectionCacheClient holds requesters' in-progress slot selections.
	SelectionCacheClient *redis.Client
)

// InitSelectionCache initializes the Redis client used for selection state.
func InitSelectionCache() {
	SelectionCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSelectionDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := SelectionCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Selection Cache): %v", err)
	}
}

// GetSelectionCacheClient returns the selection cache client.
func GetSelectionCacheClient() *redis.Client {
	if SelectionCacheClient == nil {
		InitSelectionCache()
	}
	return SelectionCacheClient
}

// QueueRedisOpt returns the connection options for the notification queue.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}
