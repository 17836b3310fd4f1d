package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/storefrontlabs/storefront-api/internal/cart"
	"github.com/storefrontlabs/storefront-api/internal/users"
)

// Memory is the in-process session store used by tests and local development.
// It serializes through JSON the same way the Redis store does, so the
// round-trip contract holds under either implementation.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemory() *Memory {
	return &Memory{data: map[string]string{}}
}

func (m *Memory) LoadCart(ctx context.Context, sessionID string) ([]cart.LineItem, error) {
	m.mu.RLock()
	raw, ok := m.data[buildKey(cartPrefix, sessionID)]
	m.mu.RUnlock()
	if !ok {
		return []cart.LineItem{}, nil
	}

	var items []cart.LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decode stored cart: %w", err)
	}
	return items, nil
}

func (m *Memory) SaveCart(ctx context.Context, sessionID string, items []cart.LineItem) error {
	if items == nil {
		items = []cart.LineItem{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	m.mu.Lock()
	m.data[buildKey(cartPrefix, sessionID)] = string(payload)
	m.mu.Unlock()
	return nil
}

func (m *Memory) ClearCart(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	delete(m.data, buildKey(cartPrefix, sessionID))
	m.mu.Unlock()
	return nil
}

func (m *Memory) LoadUser(ctx context.Context, sessionID string) (*users.User, error) {
	m.mu.RLock()
	raw, ok := m.data[buildKey(userPrefix, sessionID)]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	var user users.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("decode stored user: %w", err)
	}
	return &user, nil
}

func (m *Memory) SaveUser(ctx context.Context, sessionID string, user users.User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	m.mu.Lock()
	m.data[buildKey(userPrefix, sessionID)] = string(payload)
	m.mu.Unlock()
	return nil
}

func (m *Memory) RemoveUser(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	delete(m.data, buildKey(userPrefix, sessionID))
	m.mu.Unlock()
	return nil
}
