package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTL after which an untouched cart expires.
const TTL = 7 * 24 * time.Hour

// Line is one stored cart entry. Prices are never stored; they are
// recomputed from the catalog on every read.
type Line struct {
	ID               string `json:"id"`
	ItemType         string `json:"item_type"`
	BaseColorID      uint   `json:"base_color_id,omitempty"`
	KeycapDesignID   uint   `json:"keycap_design_id,omitempty"`
	SwitchTypeID     uint   `json:"switch_type_id,omitempty"`
	PrebuiltFidgetID uint   `json:"prebuilt_fidget_id,omitempty"`
	OtherFidgetID    uint   `json:"other_fidget_id,omitempty"`
	Quantity         int    `json:"quantity"`
}

// Store holds cart lines keyed by session id.
type Store interface {
	Get(ctx context.Context, sessionID string) ([]Line, error)
	Save(ctx context.Context, sessionID string, lines []Line) error
	Delete(ctx context.Context, sessionID string) error
}

func key(sessionID string) string {
	return "cart:" + sessionID
}

// RedisStore keeps carts in redis so they survive restarts and are shared
// across instances.
type RedisStore struct {
	Client *redis.Client
}

func NewRedisStore(addr, password string) *RedisStore {
	return &RedisStore{
		Client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
	}
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) ([]Line, error) {
	data, err := s.Client.Get(ctx, key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cart: redis get: %w", err)
	}

	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("cart: decode: %w", err)
	}
	return lines, nil
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, lines []Line) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("cart: encode: %w", err)
	}
	if err := s.Client.Set(ctx, key(sessionID), data, TTL).Err(); err != nil {
		return fmt.Errorf("cart: redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.Client.Del(ctx, key(sessionID)).Err(); err != nil {
		return fmt.Errorf("cart: redis del: %w", err)
	}
	return nil
}

// MemoryStore is the in-process fallback used by tests.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string][]Line
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string][]Line)}
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) ([]Line, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lines := s.carts[sessionID]
	out := make([]Line, len(lines))
	copy(out, lines)
	return out, nil
}

func (s *MemoryStore) Save(_ context.Context, sessionID string, lines []Line) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]Line, len(lines))
	copy(stored, lines)
	s.carts[sessionID] = stored
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
	return nil
}
