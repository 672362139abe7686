// Package auth defines the identity provider contract. The sync core treats
// the provider as opaque: it only consumes the resulting account's email and
// stable user id. Credential rejection and popup cancellation surface as
// returned error values, never as panics or notifications.
package auth

import (
	"context"
	"errors"
)

var (
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrEmailTaken           = errors.New("email is already registered")
	ErrFederatedUnsupported = errors.New("federated sign-in is not supported by this provider")
)

// Account is the authenticated-user record a provider yields.
type Account struct {
	UserID string
	Email  string
	Token  string
}

// Provider is the external identity provider: email/password sign-in,
// registration, federated (popup-style) sign-in and sign-out.
type Provider interface {
	SignIn(ctx context.Context, email, password string) (*Account, error)
	Register(ctx context.Context, email, password string) (*Account, error)
	FederatedSignIn(ctx context.Context) (*Account, error)
	SignOut(ctx context.Context) error
}
