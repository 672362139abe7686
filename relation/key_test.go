package relation

import (
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestKeyDeterministic(t *testing.T) {
	assert.Equal(t, NewKey("u1", "p1").String(), NewKey("u1", "p1").String())
	assert.Equal(t, NewKey("u1", "p1").String(), "u1_p1")
}

func TestKeyOrderSensitive(t *testing.T) {
	assert.NotEqual(t, NewKey("u1", "p1").String(), NewKey("p1", "u1").String())

	// equal ids are the only pair that renders the same both ways
	assert.Equal(t, NewKey("x", "x").String(), "x_x")
}

func TestKeyDelimiterCollision(t *testing.T) {
	// ("u_1","p") and ("u","1_p") concatenate identically without escaping
	a := NewKey("u_1", "p").String()
	b := NewKey("u", "1_p").String()
	assert.NotEqual(t, a, b)

	// backslashes in ids cannot forge an escape sequence
	c := NewKey(`u\`, "_p").String()
	d := NewKey("u", `\_p`).String()
	assert.NotEqual(t, c, d)
}

func TestKeyStableAcrossCycles(t *testing.T) {
	first := NewKey("u1", "p1").String()
	second := NewKey("u1", "p1").String()
	third := NewKey("u1", "p1").String()
	assert.Equal(t, first, second)
	assert.Equal(t, second, third)
}
