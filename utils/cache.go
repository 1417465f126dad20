// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"movebook/config"

	"github.com/go-redis/redis/v8"
)

// PricingCacheClient is the dedicated client for the pricing catalog cache.
var PricingCacheClient *redis.Client

// InitPricingCache initializes the Redis client backing the pricing catalog cache.
func InitPricingCache() {
	PricingCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisPricingDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := PricingCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Pricing Cache): %v", err)
	}
}

// GetPricingCacheClient returns the Redis client for the pricing catalog cache.
func GetPricingCacheClient() *redis.Client {
	if PricingCacheClient == nil {
		InitPricingCache()
	}
	return PricingCacheClient
}
