package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateVerifyRoundTrip(t *testing.T) {
	m := NewManager("test-secret-key", time.Hour)

	token, err := m.Generate("user-1", "admin@x.com", "super_admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin@x.com", claims.Email)
	assert.Equal(t, "super_admin", claims.Role)
	assert.NotEmpty(t, claims.JTI)

	// UserID owns the sub claim on decode; the embedded Subject stays empty
	assert.Empty(t, claims.Subject)
}

func TestVerifyTamperedSignature(t *testing.T) {
	m := NewManager("test-secret-key", time.Hour)

	token, err := m.Generate("user-1", "admin@x.com", "admin")
	require.NoError(t, err)

	// flip the last signature byte
	last := token[len(token)-1]
	flipped := byte('A')
	if last == 'A' {
		flipped = 'B'
	}
	tampered := token[:len(token)-1] + string(flipped)

	_, err = m.Verify(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := NewManager("secret-one", time.Hour)
	verifier := NewManager("secret-two", time.Hour)

	token, err := issuer.Generate("user-1", "admin@x.com", "admin")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyExpired(t *testing.T) {
	// negative TTL produces an already-expired token with a valid signature
	m := NewManager("test-secret-key", -time.Hour)

	token, err := m.Generate("user-1", "admin@x.com", "admin")
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyGarbage(t *testing.T) {
	m := NewManager("test-secret-key", time.Hour)

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		_, err := m.Verify(raw)
		assert.ErrorIs(t, err, ErrInvalidToken, "input %q", raw)
	}
}
