package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"crossconnect/identity"
	"crossconnect/store/storetest"
)

func newProvider() (*DevProvider, *identity.Manager) {
	tokens := identity.NewManager("test-secret")
	return NewDevProvider(storetest.New(), tokens, time.Hour), tokens
}

func TestRegisterAndSignIn(t *testing.T) {
	p, tokens := newProvider()
	ctx := context.Background()

	registered, err := p.Register(ctx, "a@x.com", "hunter2")
	assert.Equal(t, err, nil)
	assert.Equal(t, registered.Email, "a@x.com")
	assert.NotEqual(t, registered.UserID, "")
	assert.NotEqual(t, registered.Token, "")

	signedIn, err := p.SignIn(ctx, "a@x.com", "hunter2")
	assert.Equal(t, err, nil)
	assert.Equal(t, signedIn.UserID, registered.UserID)

	claims, err := tokens.Verify(signedIn.Token)
	assert.Equal(t, err, nil)
	assert.Equal(t, claims.Subject, registered.UserID)
	assert.Equal(t, claims.Email, "a@x.com")
}

func TestSignInRejectsBadCredentials(t *testing.T) {
	p, _ := newProvider()
	ctx := context.Background()

	_, err := p.SignIn(ctx, "nobody@x.com", "whatever")
	assert.Equal(t, errors.Is(err, ErrInvalidCredentials), true)

	p.Register(ctx, "a@x.com", "hunter2")
	_, err = p.SignIn(ctx, "a@x.com", "wrong")
	assert.Equal(t, errors.Is(err, ErrInvalidCredentials), true)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	p, _ := newProvider()
	ctx := context.Background()

	_, err := p.Register(ctx, "a@x.com", "hunter2")
	assert.Equal(t, err, nil)

	_, err = p.Register(ctx, "a@x.com", "other")
	assert.Equal(t, errors.Is(err, ErrEmailTaken), true)
}

func TestFederatedUnsupported(t *testing.T) {
	p, _ := newProvider()

	_, err := p.FederatedSignIn(context.Background())
	assert.Equal(t, errors.Is(err, ErrFederatedUnsupported), true)
	assert.Equal(t, p.SignOut(context.Background()), nil)
}
