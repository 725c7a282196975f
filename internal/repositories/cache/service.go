package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ridepool/internal/models"

	"github.com/redis/go-redis/v9"
)

type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

// Base operations
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

// Key generation
func (s *CacheService) GenerateKey(entityType, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entityType, keyType, value)
}

// Wallet caching
func (s *CacheService) CacheWallet(ctx context.Context, wallet *models.Wallet) error {
	if wallet == nil {
		return errors.New("cannot cache nil wallet")
	}
	key := s.GenerateKey("wallet", "user", wallet.UserID)
	return s.Set(ctx, key, wallet)
}

func (s *CacheService) GetWallet(ctx context.Context, userID uint) (*models.Wallet, bool, error) {
	var wallet models.Wallet
	key := s.GenerateKey("wallet", "user", userID)
	found, err := s.Get(ctx, key, &wallet)
	if err != nil || !found {
		return nil, false, err
	}
	return &wallet, true, nil
}

func (s *CacheService) InvalidateWallet(ctx context.Context, userID uint) error {
	return s.Delete(ctx, s.GenerateKey("wallet", "user", userID))
}

// Trip caching
func (s *CacheService) CacheTrip(ctx context.Context, trip *models.Trip) error {
	if trip == nil {
		return errors.New("cannot cache nil trip")
	}
	key := s.GenerateKey("trip", "id", trip.ID)
	return s.Set(ctx, key, trip)
}

func (s *CacheService) GetTrip(ctx context.Context, tripID uint) (*models.Trip, bool, error) {
	var trip models.Trip
	key := s.GenerateKey("trip", "id", tripID)
	found, err := s.Get(ctx, key, &trip)
	if err != nil || !found {
		return nil, false, err
	}
	return &trip, true, nil
}

func (s *CacheService) InvalidateTrip(ctx context.Context, tripID uint) error {
	return s.Delete(ctx, s.GenerateKey("trip", "id", tripID))
}

func (s *CacheService) FlushAll(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

func (s *CacheService) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

func (s *CacheService) Close() error {
	return s.client.Close()
}
