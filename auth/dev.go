package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"crossconnect/identity"
	"crossconnect/store"
)

type credential struct {
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
	UserID       string `json:"userID"`
}

// DevProvider is a document-store-backed provider for development: bcrypt
// hashes in the credentials collection, HS256 identity tokens. Production
// deployments plug in a real provider behind the same interface.
type DevProvider struct {
	store  store.Store
	tokens *identity.Manager
	expiry time.Duration
}

func NewDevProvider(st store.Store, tokens *identity.Manager, expiry time.Duration) *DevProvider {
	return &DevProvider{
		store:  st,
		tokens: tokens,
		expiry: expiry,
	}
}

func (p *DevProvider) Register(ctx context.Context, email, password string) (*Account, error) {
	existing, err := p.lookup(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userID := uuid.New().String()

	fields := store.Fields{
		"email":        email,
		"passwordHash": string(hash),
		"userID":       userID,
	}
	if err := p.store.Upsert(ctx, store.CollectionCredentials, email, fields); err != nil {
		return nil, fmt.Errorf("failed to store credentials: %w", err)
	}

	return p.account(userID, email)
}

func (p *DevProvider) SignIn(ctx context.Context, email, password string) (*Account, error) {
	cred, err := p.lookup(ctx, email)
	if err != nil {
		return nil, err
	}
	if cred == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return p.account(cred.UserID, email)
}

func (p *DevProvider) FederatedSignIn(ctx context.Context) (*Account, error) {
	return nil, ErrFederatedUnsupported
}

// SignOut has nothing to revoke: dev tokens simply expire.
func (p *DevProvider) SignOut(ctx context.Context) error {
	return nil
}

func (p *DevProvider) lookup(ctx context.Context, email string) (*credential, error) {
	q := store.Query{
		Collection: store.CollectionCredentials,
		Where:      &store.Filter{Field: "email", Value: email},
	}

	docs, err := p.store.Get(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to look up credentials: %w", err)
	}
	if len(docs) == 0 {
		return nil, nil
	}

	var cred credential
	if err := docs[0].Decode(&cred); err != nil {
		return nil, err
	}
	return &cred, nil
}

func (p *DevProvider) account(userID, email string) (*Account, error) {
	token, err := p.tokens.Generate(userID, email, p.expiry)
	if err != nil {
		return nil, err
	}
	return &Account{UserID: userID, Email: email, Token: token}, nil
}

var _ Provider = (*DevProvider)(nil)
