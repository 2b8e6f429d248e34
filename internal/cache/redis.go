package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Domenick1991/airportservice/config"
	"github.com/Domenick1991/airportservice/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisCache holds the small, rarely written reference lists.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(cfg config.RedisConfig, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		ttl:    ttl,
	}
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) GetCountries(ctx context.Context) ([]domain.Country, error) {
	var countries []domain.Country
	ok, err := c.get(ctx, countriesKey(), &countries)
	if err != nil || !ok {
		return nil, err
	}
	return countries, nil
}

func (c *RedisCache) SetCountries(ctx context.Context, countries []domain.Country) error {
	return c.set(ctx, countriesKey(), countries)
}

func (c *RedisCache) InvalidateCountries(ctx context.Context) error {
	return c.client.Del(ctx, countriesKey()).Err()
}

func (c *RedisCache) GetAirplaneTypes(ctx context.Context) ([]domain.AirplaneType, error) {
	var types []domain.AirplaneType
	ok, err := c.get(ctx, airplaneTypesKey(), &types)
	if err != nil || !ok {
		return nil, err
	}
	return types, nil
}

func (c *RedisCache) SetAirplaneTypes(ctx context.Context, types []domain.AirplaneType) error {
	return c.set(ctx, airplaneTypesKey(), types)
}

func (c *RedisCache) InvalidateAirplaneTypes(ctx context.Context) error {
	return c.client.Del(ctx, airplaneTypesKey()).Err()
}

// get reports false without error on a cache miss.
func (c *RedisCache) get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisCache) set(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, c.ttl).Err()
}

func countriesKey() string {
	return "cache:reference:countries"
}

func airplaneTypesKey() string {
	return "cache:reference:airplane_types"
}
