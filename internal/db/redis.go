package db

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"hyperhive-backend/internal/config"
)

var RedisClient *redis.Client

// InitRedis connects to Redis. A failure is not fatal: callers treat a
// nil client as "cache disabled".
func InitRedis() *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unavailable, caching disabled: %v", err)
		return nil
	}

	log.Printf("Connected to Redis at %s", config.AppConfig.RedisAddr)
	RedisClient = client
	return client
}
