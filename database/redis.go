package database

import (
	"context"
	"log"

	"certvault/config"

	"github.com/go-redis/redis/v8"
)

// Redis is the global redis client, used for the leaderboard cache.
// It stays nil when REDIS_ADDR is not configured; callers must handle that.
var Redis *redis.Client

// Ctx is the shared context for redis operations
var Ctx = context.Background()

// ConnectRedis initializes the redis connection if one is configured
func ConnectRedis() {
	if config.AppConfig.RedisAddr == "" {
		log.Println("REDIS_ADDR not set, leaderboard cache disabled.")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       0,
	})

	if _, err := client.Ping(Ctx).Result(); err != nil {
		log.Printf("Warning: redis unreachable (%v), leaderboard cache disabled.", err)
		return
	}

	Redis = client
	log.Println("Connected Successfully to Redis")
}
