// Package checkout runs the simulated order flow: no payment processor is
// involved, the order "processes" for a configured delay, the cart clears,
// and the shopper gets a confirmation.
package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefrontlabs/storefront-api/internal/cart"
	pkgerrors "github.com/storefrontlabs/storefront-api/pkg/errors"
	"github.com/storefrontlabs/storefront-api/pkg/money"
)

// ShippingForm is the checkout payload. Validation happens at decode time via
// the struct tags.
type ShippingForm struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Address   string `json:"address" validate:"required"`
	City      string `json:"city" validate:"required"`
	State     string `json:"state" validate:"required"`
	Zip       string `json:"zip" validate:"required"`
}

// Confirmation snapshots the order at the moment the cart cleared.
type Confirmation struct {
	OrderNumber  string          `json:"orderNumber"`
	ItemCount    int             `json:"itemCount"`
	Total        decimal.Decimal `json:"total"`
	TotalDisplay string          `json:"totalDisplay"`
	PlacedAt     time.Time       `json:"placedAt"`
}

type carts interface {
	Get(ctx context.Context, sessionID string) (cart.State, error)
	Clear(ctx context.Context, sessionID string) (cart.State, error)
}

// Service exposes the checkout operation.
type Service interface {
	Submit(ctx context.Context, sessionID string, form ShippingForm) (*Confirmation, error)
}

type service struct {
	carts carts
	delay time.Duration
}

// NewService builds the checkout service with the configured processing delay.
func NewService(cartService carts, delay time.Duration) (Service, error) {
	if cartService == nil {
		return nil, fmt.Errorf("cart service required")
	}
	if delay < 0 {
		delay = 0
	}
	return &service{carts: cartService, delay: delay}, nil
}

// Submit places the order: rejects empty carts, waits out the simulated
// processing window, then clears the cart and confirms.
func (s *service) Submit(ctx context.Context, sessionID string, form ShippingForm) (*Confirmation, error) {
	state, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(state.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, ctx.Err(), "checkout interrupted")
		}
	}

	if _, err := s.carts.Clear(ctx, sessionID); err != nil {
		return nil, err
	}

	return &Confirmation{
		OrderNumber:  uuid.NewString(),
		ItemCount:    state.ItemCount,
		Total:        state.Total,
		TotalDisplay: money.FormatPrice(state.Total),
		PlacedAt:     time.Now().UTC(),
	}, nil
}
