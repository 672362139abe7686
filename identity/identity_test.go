package identity

import (
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewManager("test-secret")

	token, err := m.Generate("u1", "a@x.com", time.Hour)
	assert.Equal(t, err, nil)

	claims, err := m.Verify(token)
	assert.Equal(t, err, nil)
	assert.Equal(t, claims.Subject, "u1")
	assert.Equal(t, claims.Email, "a@x.com")
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewManager("secret-a").Generate("u1", "a@x.com", time.Hour)
	assert.Equal(t, err, nil)

	_, err = NewManager("secret-b").Verify(token)
	assert.NotEqual(t, err, nil)
}

func TestVerifyRejectsExpired(t *testing.T) {
	m := NewManager("test-secret")

	token, err := m.Generate("u1", "a@x.com", -time.Minute)
	assert.Equal(t, err, nil)

	_, err = m.Verify(token)
	assert.NotEqual(t, err, nil)
}

func TestIdentifyIsStableAcrossTokens(t *testing.T) {
	m := NewManager("test-secret")
	p := NewProvider(m, nil)

	first, _ := m.Generate("u1", "a@x.com", time.Hour)
	second, _ := m.Generate("u1", "a@x.com", time.Hour)

	id1, email1, err := p.Identify(first)
	assert.Equal(t, err, nil)
	id2, email2, err := p.Identify(second)
	assert.Equal(t, err, nil)

	assert.Equal(t, id1, id2)
	assert.Equal(t, email1, email2)
}
