// Package identity derives stable user identifiers and exposes the signed-in
// user's email for downstream query filtering.
package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"crossconnect/scratch"
)

// ErrNoCurrentUser is returned when no sign-in has been remembered yet.
var ErrNoCurrentUser = errors.New("no signed-in user")

type Provider struct {
	tokens  *Manager
	scratch *scratch.Store
}

func NewProvider(tokens *Manager, sc *scratch.Store) *Provider {
	return &Provider{tokens: tokens, scratch: sc}
}

// Identify extracts the stable user identifier and email from an identity
// token. The subject is stable across sessions for the same account.
func (p *Provider) Identify(token string) (userID, email string, err error) {
	claims, err := p.tokens.Verify(token)
	if err != nil {
		return "", "", err
	}
	return claims.Subject, claims.Email, nil
}

// NewUserID generates the app-level unique user id assigned at registration.
func (p *Provider) NewUserID() string {
	return uuid.New().String()
}

// Remember records the signed-in email in scratch storage. Called at login
// and registration time.
func (p *Provider) Remember(ctx context.Context, email string) error {
	return p.scratch.SetLastEmail(ctx, email)
}

// Forget clears the remembered email at sign-out.
func (p *Provider) Forget(ctx context.Context) error {
	return p.scratch.Clear(ctx)
}

// CurrentEmail returns the email remembered from the last sign-in.
func (p *Provider) CurrentEmail(ctx context.Context) (string, error) {
	email, err := p.scratch.LastEmail(ctx)
	if err != nil {
		return "", err
	}
	if email == "" {
		return "", ErrNoCurrentUser
	}
	return email, nil
}
