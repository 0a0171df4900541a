/*
Copyright 2024 Blnk Finance Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cache

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/cache/v9"
	"github.com/jerry-enebeli/runboard/config"
	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned by Get when the key is not cached.
var ErrMiss = cache.ErrCacheMiss

// Cache is the key/value store used to keep read-mostly lists, such as the saved view
// library, close to the API.
type Cache interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Get decodes the cached value into data, which must be a pointer.
	// Returns ErrMiss when the key does not exist.
	Get(ctx context.Context, key string, data interface{}) error

	Delete(ctx context.Context, key string) error
}

// RedisCache implements Cache on Redis with a TinyLFU local cache in front.
type RedisCache struct {
	cache *cache.Cache
}

// NewCache connects to the Redis configured under redis.dns.
func NewCache() (Cache, error) {
	cfg, err := config.Fetch()
	if err != nil {
		return nil, err
	}
	if cfg.Redis.Dns == "" {
		return nil, errors.New("redis DNS is required for caching")
	}

	client, err := NewRedisClient(cfg.Redis.Dns)
	if err != nil {
		return nil, err
	}
	return NewWithClient(client), nil
}

// cacheSize defines the size of the local cache (in number of entries) used alongside Redis.
const cacheSize = 128000

// localTTL bounds how stale the in-process copy may be. Deletes only reach this process's copy.
const localTTL = 5 * time.Second

func NewWithClient(client redis.UniversalClient) *RedisCache {
	c := cache.New(&cache.Options{
		Redis:      client,
		LocalCache: cache.NewTinyLFU(cacheSize, localTTL),
	})
	return &RedisCache{cache: c}
}

func (r *RedisCache) Set(ctx context.Context, key string, data interface{}, ttl time.Duration) error {
	return r.cache.Set(&cache.Item{
		Ctx:   ctx,
		Key:   key,
		Value: data,
		TTL:   ttl,
	})
}

func (r *RedisCache) Get(ctx context.Context, key string, data interface{}) error {
	return r.cache.Get(ctx, key, data)
}

func (r *RedisCache) Delete(ctx context.Context, key string) error {
	err := r.cache.Delete(ctx, key)
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil
	}
	return err
}
