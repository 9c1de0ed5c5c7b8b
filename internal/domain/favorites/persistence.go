// internal/domain/favorites/persistence.go
package favorites

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// FavoritesKey is the default storage key for the favorites document
const FavoritesKey = "favorites"

// Persistence is the durable storage port for the favorites set
type Persistence interface {
	Load(ctx context.Context) ([]uint, error)
	Save(ctx context.Context, ids []uint) error
}

// RedisPersistence stores the set as a JSON array in Redis
type RedisPersistence struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisPersistence creates a Redis-backed persistence port. An empty key
// falls back to FavoritesKey.
func NewRedisPersistence(client *redis.Client, key string, ttl time.Duration) *RedisPersistence {
	if key == "" {
		key = FavoritesKey
	}
	return &RedisPersistence{
		client: client,
		key:    key,
		ttl:    ttl,
	}
}

// Load retrieves the favorites document, or an empty set if none exists
func (p *RedisPersistence) Load(ctx context.Context) ([]uint, error) {
	data, err := p.client.Get(ctx, p.key).Result()
	if err == redis.Nil {
		return []uint{}, nil
	} else if err != nil {
		return nil, err
	}

	var ids []uint
	if err := json.Unmarshal([]byte(data), &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// Save writes the favorites document with the configured expiration
func (p *RedisPersistence) Save(ctx context.Context, ids []uint) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return p.client.Set(ctx, p.key, data, p.ttl).Err()
}

// MemoryPersistence is an in-memory persistence port for tests
type MemoryPersistence struct {
	mu  sync.Mutex
	ids []uint
}

// NewMemoryPersistence creates an in-memory persistence port
func NewMemoryPersistence() *MemoryPersistence {
	return &MemoryPersistence{}
}

// Load returns a copy of the stored set
func (p *MemoryPersistence) Load(ctx context.Context) ([]uint, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]uint{}, p.ids...), nil
}

// Save stores a copy of the set
func (p *MemoryPersistence) Save(ctx context.Context, ids []uint) error {
	p.mu.Lock()
	p.ids = append([]uint{}, ids...)
	p.mu.Unlock()
	return nil
}
