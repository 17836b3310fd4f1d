package storage

import (
	"context"

	"github.com/storefrontlabs/storefront-api/internal/cart"
	"github.com/storefrontlabs/storefront-api/internal/users"
)

// Disabled is the no-storage mode: every read is empty, every write a no-op.
// It keeps the application fully functional when no Redis is configured,
// trading only persistence across restarts.
type Disabled struct{}

func NewDisabled() Disabled { return Disabled{} }

func (Disabled) LoadCart(ctx context.Context, sessionID string) ([]cart.LineItem, error) {
	return []cart.LineItem{}, nil
}

func (Disabled) SaveCart(ctx context.Context, sessionID string, items []cart.LineItem) error {
	return nil
}

func (Disabled) ClearCart(ctx context.Context, sessionID string) error {
	return nil
}

func (Disabled) LoadUser(ctx context.Context, sessionID string) (*users.User, error) {
	return nil, nil
}

func (Disabled) SaveUser(ctx context.Context, sessionID string, user users.User) error {
	return nil
}

func (Disabled) RemoveUser(ctx context.Context, sessionID string) error {
	return nil
}
