// internal/domain/cart/persistence.go
package cart

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// CartKey is the default storage key for a cart document
const CartKey = "cart"

// Persistence is the durable storage port for a cart. Load returns an empty
// cart when nothing has been saved yet.
type Persistence interface {
	Load(ctx context.Context) (*Cart, error)
	Save(ctx context.Context, c *Cart) error
	Clear(ctx context.Context) error
}

// RedisPersistence stores the cart as a JSON document in Redis
type RedisPersistence struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisPersistence creates a Redis-backed persistence port. An empty key
// falls back to CartKey.
func NewRedisPersistence(client *redis.Client, key string, ttl time.Duration) *RedisPersistence {
	if key == "" {
		key = CartKey
	}
	return &RedisPersistence{
		client: client,
		key:    key,
		ttl:    ttl,
	}
}

// Load retrieves the cart document, or an empty cart if none exists
func (p *RedisPersistence) Load(ctx context.Context) (*Cart, error) {
	data, err := p.client.Get(ctx, p.key).Result()
	if err == redis.Nil {
		now := time.Now().UTC()
		return &Cart{
			Items:     []CartItem{},
			CreatedAt: now,
			UpdatedAt: now,
		}, nil
	} else if err != nil {
		return nil, err
	}

	var c Cart
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Save writes the cart document with the configured expiration
func (p *RedisPersistence) Save(ctx context.Context, c *Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return p.client.Set(ctx, p.key, data, p.ttl).Err()
}

// Clear removes the cart document
func (p *RedisPersistence) Clear(ctx context.Context) error {
	return p.client.Del(ctx, p.key).Err()
}

// MemoryPersistence is an in-memory persistence port for tests
type MemoryPersistence struct {
	mu   sync.Mutex
	cart *Cart
}

// NewMemoryPersistence creates an in-memory persistence port
func NewMemoryPersistence() *MemoryPersistence {
	return &MemoryPersistence{}
}

// Load returns a copy of the stored cart, or an empty cart
func (p *MemoryPersistence) Load(ctx context.Context) (*Cart, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cart == nil {
		now := time.Now().UTC()
		return &Cart{
			Items:     []CartItem{},
			CreatedAt: now,
			UpdatedAt: now,
		}, nil
	}

	// Round-trip through JSON so callers never share slices with the store
	data, err := json.Marshal(p.cart)
	if err != nil {
		return nil, err
	}
	var c Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Save stores a copy of the cart
func (p *MemoryPersistence) Save(ctx context.Context, c *Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	var stored Cart
	if err := json.Unmarshal(data, &stored); err != nil {
		return err
	}

	p.mu.Lock()
	p.cart = &stored
	p.mu.Unlock()
	return nil
}

// Clear drops the stored cart
func (p *MemoryPersistence) Clear(ctx context.Context) error {
	p.mu.Lock()
	p.cart = nil
	p.mu.Unlock()
	return nil
}
