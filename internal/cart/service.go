package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/storefrontlabs/storefront-api/internal/catalog"
	"github.com/storefrontlabs/storefront-api/pkg/logger"
)

// Store is the persistence surface the cart needs. Implementations degrade to
// empty reads and no-op writes when no durable storage is available; they
// never block shopping.
type Store interface {
	LoadCart(ctx context.Context, sessionID string) ([]LineItem, error)
	SaveCart(ctx context.Context, sessionID string, items []LineItem) error
	ClearCart(ctx context.Context, sessionID string) error
}

// ChangeObserver is notified after every committed mutation with the new
// line-item list. Persistence is wired as one of these at construction so the
// transition logic stays pure.
type ChangeObserver func(ctx context.Context, sessionID string, items []LineItem)

// Service owns the authoritative in-memory cart per session.
type Service interface {
	Get(ctx context.Context, sessionID string) (State, error)
	Add(ctx context.Context, sessionID string, product catalog.Product) (State, error)
	Remove(ctx context.Context, sessionID string, productID catalog.ProductID) (State, error)
	UpdateQuantity(ctx context.Context, sessionID string, productID catalog.ProductID, quantity int) (State, error)
	Clear(ctx context.Context, sessionID string) (State, error)
}

type service struct {
	store Store
	logg  *logger.Logger

	mu        sync.Mutex
	states    map[string]State
	observers []ChangeObserver
}

// NewService builds the cart service. A nil store is a programming error and
// refuses construction.
func NewService(store Store, logg *logger.Logger, observers ...ChangeObserver) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}

	s := &service{
		store:  store,
		logg:   logg,
		states: make(map[string]State),
	}

	// Persistence registers once, up front, like any other observer.
	// Mutations run the pure transition first and then fan out.
	s.observers = append(s.observers, s.persist)
	s.observers = append(s.observers, observers...)
	return s, nil
}

// Get returns the session's cart, hydrating from the store on first touch.
// Hydration is read-only: it never writes the loaded state back.
func (s *service) Get(ctx context.Context, sessionID string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hydrated(ctx, sessionID), nil
}

// Add appends a line or increments an existing one, then persists.
func (s *service) Add(ctx context.Context, sessionID string, product catalog.Product) (State, error) {
	return s.mutate(ctx, sessionID, func(state State) State {
		return state.Add(product)
	})
}

// Remove drops the matching line, then persists. Absent ids are a no-op.
func (s *service) Remove(ctx context.Context, sessionID string, productID catalog.ProductID) (State, error) {
	return s.mutate(ctx, sessionID, func(state State) State {
		return state.Remove(productID)
	})
}

// UpdateQuantity sets a line's quantity, removing it at zero or below.
func (s *service) UpdateQuantity(ctx context.Context, sessionID string, productID catalog.ProductID, quantity int) (State, error) {
	return s.mutate(ctx, sessionID, func(state State) State {
		return state.UpdateQuantity(productID, quantity)
	})
}

// Clear empties the cart. The persistence observer removes the stored value.
func (s *service) Clear(ctx context.Context, sessionID string) (State, error) {
	return s.mutate(ctx, sessionID, func(state State) State {
		return state.Clear()
	})
}

func (s *service) mutate(ctx context.Context, sessionID string, transition func(State) State) (State, error) {
	s.mu.Lock()
	state := transition(s.hydrated(ctx, sessionID))
	s.states[sessionID] = state
	s.mu.Unlock()

	for _, observer := range s.observers {
		observer(ctx, sessionID, state.Items)
	}
	return state, nil
}

// hydrated returns the in-memory state, seeding it from the store the first
// time a session is seen. Callers hold the mutex.
func (s *service) hydrated(ctx context.Context, sessionID string) State {
	if state, ok := s.states[sessionID]; ok {
		return state
	}

	items, err := s.store.LoadCart(ctx, sessionID)
	if err != nil {
		// Storage loss degrades to an empty cart, never to an error.
		s.warn(ctx, sessionID, "cart.hydrate_failed")
		items = nil
	}
	state := FromItems(items)
	s.states[sessionID] = state
	return state
}

// persist mirrors the committed state into the store: an empty cart removes
// the key, anything else overwrites the full list.
func (s *service) persist(ctx context.Context, sessionID string, items []LineItem) {
	var err error
	if len(items) == 0 {
		err = s.store.ClearCart(ctx, sessionID)
	} else {
		err = s.store.SaveCart(ctx, sessionID, items)
	}
	if err != nil {
		s.warn(ctx, sessionID, "cart.persist_failed")
	}
}

func (s *service) warn(ctx context.Context, sessionID, msg string) {
	if s.logg == nil {
		return
	}
	s.logg.Warn(s.logg.WithSessionID(ctx, sessionID), msg)
}
