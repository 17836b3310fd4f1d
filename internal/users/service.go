// Package users keeps the optional per-session user record. Nothing in the
// storefront produces it; the UI writes it and reads it back.
package users

import (
	"context"
	"fmt"
	"strings"

	pkgerrors "github.com/storefrontlabs/storefront-api/pkg/errors"
)

// User is the stored record.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Store is the persistence surface the user service needs.
type Store interface {
	LoadUser(ctx context.Context, sessionID string) (*User, error)
	SaveUser(ctx context.Context, sessionID string, user User) error
	RemoveUser(ctx context.Context, sessionID string) error
}

// Service exposes the user record operations.
type Service interface {
	Get(ctx context.Context, sessionID string) (*User, error)
	Save(ctx context.Context, sessionID string, user User) (*User, error)
	Remove(ctx context.Context, sessionID string) error
}

type service struct {
	store Store
}

// NewService builds the user service. A nil store refuses construction.
func NewService(store Store) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("user store required")
	}
	return &service{store: store}, nil
}

func (s *service) Get(ctx context.Context, sessionID string) (*User, error) {
	user, err := s.store.LoadUser(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}
	if user == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no user for session")
	}
	return user, nil
}

func (s *service) Save(ctx context.Context, sessionID string, user User) (*User, error) {
	user.ID = strings.TrimSpace(user.ID)
	user.Email = strings.TrimSpace(user.Email)
	user.Name = strings.TrimSpace(user.Name)
	if user.ID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	if err := s.store.SaveUser(ctx, sessionID, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save user")
	}
	return &user, nil
}

func (s *service) Remove(ctx context.Context, sessionID string) error {
	if err := s.store.RemoveUser(ctx, sessionID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove user")
	}
	return nil
}
