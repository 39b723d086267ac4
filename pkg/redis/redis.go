package redis

import (
	"context"
	"errors"
	"fmt"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"os"
	"strconv"
	"time"
)

type IRedis interface {
	SetOTP(ctx context.Context, key string, code string, expiration time.Duration) error
	GetOTP(ctx context.Context, key string) (string, error)
	DeleteOTP(ctx context.Context, key string) error
	GetScanCount(ctx context.Context, userID string, month time.Time) (int64, error)
	IncrementScanCount(ctx context.Context, userID string, month time.Time) (int64, error)
}

type redisClient struct {
	client *redis.Client
}

func New() IRedis {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	redisAddr := os.Getenv("REDIS_ADDRESS")
	redisPassword := os.Getenv("REDIS_PASSWORD")

	logrus.Info(fmt.Sprintf("Connecting to Redis at %s...", redisAddr))

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logrus.Info("Successfully connected to Redis")
	}

	return &redisClient{client: client}
}

func (r *redisClient) SetOTP(ctx context.Context, key string, code string, expiration time.Duration) error {
	err := r.client.Set(ctx, key, code, expiration).Err()
	if err != nil {
		logrus.Error(fmt.Sprintf("Error setting OTP for key %s: %v", key, err))
		return err
	}
	return nil
}

func (r *redisClient) GetOTP(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", err
	} else if err != nil {
		logrus.Error(fmt.Sprintf("Error getting OTP for key %s: %v", key, err))
		return "", err
	}
	return val, nil
}

func (r *redisClient) DeleteOTP(ctx context.Context, key string) error {
	_, err := r.client.Del(ctx, key).Result()
	if err != nil {
		logrus.Error(fmt.Sprintf("Error deleting OTP for key %s: %v", key, err))
		return err
	}
	return nil
}

func scanCountKey(userID string, month time.Time) string {
	return fmt.Sprintf("scan_count:%s:%s", userID, month.Format("2006-01"))
}

func (r *redisClient) GetScanCount(ctx context.Context, userID string, month time.Time) (int64, error) {
	val, err := r.client.Get(ctx, scanCountKey(userID, month)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	} else if err != nil {
		logrus.Error(fmt.Sprintf("Error getting scan count for user %s: %v", userID, err))
		return 0, err
	}
	return val, nil
}

func (r *redisClient) IncrementScanCount(ctx context.Context, userID string, month time.Time) (int64, error) {
	key := scanCountKey(userID, month)

	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		logrus.Error(fmt.Sprintf("Error incrementing scan count for user %s: %v", userID, err))
		return 0, err
	}

	// Counter resets by expiring shortly after the calendar month ends.
	if count == 1 {
		if err := r.client.Expire(ctx, key, 32*24*time.Hour).Err(); err != nil {
			logrus.Error(fmt.Sprintf("Error setting scan count expiry for user %s: %v", userID, err))
		}
	}

	return count, nil
}
