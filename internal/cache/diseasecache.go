package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DiseaseInfoCache keeps enrichment payloads in Redis so repeated
// detections of the same label skip the table lookup and the generative
// call. A nil cache is valid and turns every operation into a no-op.
type DiseaseInfoCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDiseaseInfoCache connects to Redis and verifies the connection.
func NewDiseaseInfoCache(addr, password string, ttl time.Duration) (*DiseaseInfoCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &DiseaseInfoCache{client: rdb, ttl: ttl}, nil
}

func key(diseaseName, cropType string) string {
	return fmt.Sprintf("disease_info:%s:%s", diseaseName, cropType)
}

// Get returns the cached payload for (diseaseName, cropType), or ok=false
// on a miss. Cache errors are returned so the caller can log and fall
// through to the database.
func (c *DiseaseInfoCache) Get(ctx context.Context, diseaseName, cropType string) ([]byte, bool, error) {
	if c == nil || c.client == nil {
		return nil, false, nil
	}
	data, err := c.client.Get(ctx, key(diseaseName, cropType)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores a payload with the configured TTL.
func (c *DiseaseInfoCache) Set(ctx context.Context, diseaseName, cropType string, payload []byte) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Set(ctx, key(diseaseName, cropType), payload, c.ttl).Err()
}

// Invalidate drops every cached payload for a disease label, regardless of
// crop type. Used when the reference table changes.
func (c *DiseaseInfoCache) Invalidate(ctx context.Context, diseaseName string) error {
	if c == nil || c.client == nil {
		return nil
	}
	pattern := fmt.Sprintf("disease_info:%s:*", diseaseName)
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

func (c *DiseaseInfoCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
